package sitekey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savedhi/internal/model"
	"savedhi/internal/userkey"
)

func testUserKey(t *testing.T) *model.UserKey {
	t.Helper()
	uk, err := userkey.Derive("Robert Lee Mitchell", "banana colored duckling", model.V3)
	require.NoError(t, err)
	return uk
}

func TestDeriveDeterministic(t *testing.T) {
	uk := testUserKey(t)
	a, err := Derive(uk, "masterpasswordapp.com", 1, model.Authentication, "", model.V3, time.Time{})
	require.NoError(t, err)
	b, err := Derive(uk, "masterpasswordapp.com", 1, model.Authentication, "", model.V3, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, a.Bytes, b.Bytes)
}

func TestDeriveRejectsEmptySiteName(t *testing.T) {
	uk := testUserKey(t)
	_, err := Derive(uk, "", 1, model.Authentication, "", model.V3, time.Time{})
	assert.Equal(t, model.KindMissingInput, model.KindOf(err))
}

func TestTOTPStableWithinWindowChangesAcrossIt(t *testing.T) {
	uk := testUserKey(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	withinWindow := base.Add(2 * time.Minute)
	nextWindow := base.Add(6 * time.Minute)

	a, err := Derive(uk, "site.com", model.CounterTOTP, model.Authentication, "", model.V3, base)
	require.NoError(t, err)
	b, err := Derive(uk, "site.com", model.CounterTOTP, model.Authentication, "", model.V3, withinWindow)
	require.NoError(t, err)
	c, err := Derive(uk, "site.com", model.CounterTOTP, model.Authentication, "", model.V3, nextWindow)
	require.NoError(t, err)

	assert.Equal(t, a.Bytes, b.Bytes)
	assert.NotEqual(t, a.Bytes, c.Bytes)
}

func TestEffectiveCounterPassesThroughNonZero(t *testing.T) {
	assert.Equal(t, uint32(42), EffectiveCounter(42, time.Now()))
}
