package userkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savedhi/internal/model"
)

func TestDeriveDeterministic(t *testing.T) {
	a, err := Derive("Robert Lee Mitchell", "banana colored duckling", model.V3)
	require.NoError(t, err)
	b, err := Derive("Robert Lee Mitchell", "banana colored duckling", model.V3)
	require.NoError(t, err)
	assert.Equal(t, a.Bytes, b.Bytes)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.Len(t, a.Fingerprint, 64)
}

func TestDeriveRejectsMissingInput(t *testing.T) {
	_, err := Derive("", "secret", model.V3)
	assert.Equal(t, model.KindMissingInput, model.KindOf(err))

	_, err = Derive("name", "", model.V3)
	assert.Equal(t, model.KindMissingInput, model.KindOf(err))
}

func TestDeriveRejectsUnsupportedVersion(t *testing.T) {
	_, err := Derive("name", "secret", model.AlgorithmVersion(7))
	assert.Equal(t, model.KindUnsupportedVersion, model.KindOf(err))
}

func TestV0VsV3DivergeOnMultiByteName(t *testing.T) {
	// A name containing a multi-byte UTF-8 character must yield different
	// keyIDs between V0 (codepoint length prefix) and V3 (byte length
	// prefix) — spec §8 boundary case.
	name := "→robert"
	v0Key, err := Derive(name, "secret", model.V0)
	require.NoError(t, err)
	v3Key, err := Derive(name, "secret", model.V3)
	require.NoError(t, err)
	assert.NotEqual(t, v0Key.Fingerprint, v3Key.Fingerprint)
}
