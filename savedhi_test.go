package savedhi

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	refUserName = "Robert Lee Mitchell"
	refSecret   = "banana colored duckling"
	refSite     = "masterpasswordapp.com"
)

func refSiteKey(t *testing.T, algo AlgorithmVersion) (*UserKey, *SiteKey) {
	t.Helper()
	uk, err := DeriveUserKey(refUserName, refSecret, algo)
	require.NoError(t, err)
	sk, err := DeriveSiteKey(uk, refSite, CounterInitial, Authentication, "", algo, time.Time{})
	require.NoError(t, err)
	return uk, sk
}

// Scenario 1 (spec §8): V3 Long template result is 14 characters.
func TestScenarioLongTemplate(t *testing.T) {
	_, sk := refSiteKey(t, V3)
	out, err := SiteResult(nil, sk, TemplateLong, "")
	require.NoError(t, err)
	assert.Len(t, out, 14)
}

// Scenario 2: V3 Name template result is 9 lowercase letters (cvccvcvcv).
func TestScenarioNameTemplate(t *testing.T) {
	_, sk := refSiteKey(t, V3)
	out, err := SiteResult(nil, sk, TemplateName, "")
	require.NoError(t, err)
	assert.Len(t, out, 9)
	for _, r := range out {
		assert.True(t, r >= 'a' && r <= 'z')
	}
}

// Scenario 3: V3 PIN template result is 4 decimal digits.
func TestScenarioPINTemplate(t *testing.T) {
	_, sk := refSiteKey(t, V3)
	out, err := SiteResult(nil, sk, TemplatePIN, "")
	require.NoError(t, err)
	assert.Len(t, out, 4)
	for _, r := range out {
		assert.True(t, r >= '0' && r <= '9')
	}
}

// Scenario 4: V3 DeriveKey with resultParam="256" is base64 of 32 bytes.
func TestScenarioDeriveKey(t *testing.T) {
	_, sk := refSiteKey(t, V3)
	out, err := DeriveSubkey(sk, "256")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	decoded, err := base64.StdEncoding.DecodeString(out)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
}

// Scenario 5: V0 vs V3 diverge on a multi-byte-codepoint user name because
// V0 counts codepoints and V3 counts bytes in the user-key salt's length
// prefix.
func TestScenarioV0VsV3Divergence(t *testing.T) {
	name := "→robert"
	v0Key, err := DeriveUserKey(name, refSecret, V0)
	require.NoError(t, err)
	v3Key, err := DeriveUserKey(name, refSecret, V3)
	require.NoError(t, err)
	assert.NotEqual(t, v0Key.Fingerprint, v3Key.Fingerprint)
}

// Scenario 6: a redacted JSON marshal round-trip preserves every
// non-content field bit-identically, keeps ExportContent content as
// ciphertext, and omits device-private content entirely.
func TestScenarioRedactedMarshalRoundTrip(t *testing.T) {
	uk, err := DeriveUserKey(refUserName, refSecret, V3)
	require.NoError(t, err)

	answer, err := EncryptState(uk, "my childhood street")
	require.NoError(t, err)
	devicePrivate, err := EncryptState(uk, "device-bound secret")
	require.NoError(t, err)

	user := &MarshalledUser{
		UserName:    refUserName,
		Algorithm:   V3,
		KeyID:       UserKeyFingerprint(uk),
		DefaultType: TemplateLong,
		LoginType:   TemplateName,
		Sites: []MarshalledSite{
			{
				SiteName:   refSite,
				Algorithm:  V3,
				Counter:    CounterInitial,
				ResultType: TemplateLong,
				Questions: []MarshalledQuestion{
					{Keyword: "street", Type: StatePersonal, State: answer},
				},
			},
			{
				SiteName:   "example.org",
				Algorithm:  V3,
				Counter:    CounterInitial,
				ResultType: StateDevice,
				ResultState: devicePrivate,
			},
		},
	}

	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	out, err := MarshalWrite(user, WriteOptions{Format: FormatJSON, Redacted: true, Now: func() time.Time { return now }})
	require.NoError(t, err)

	file := MarshalRead(out, ReadOptions{})
	require.Nil(t, file.Err)
	require.NotNil(t, file.Data)

	assert.Equal(t, user.UserName, file.Data.UserName)
	assert.Equal(t, user.KeyID, file.Data.KeyID)
	require.Len(t, file.Data.Sites, 2)

	// StatePersonal has ExportContent: its ciphertext survives redaction.
	require.Len(t, file.Data.Sites[0].Questions, 1)
	assert.Equal(t, answer, file.Data.Sites[0].Questions[0].State)

	// StateDevice is device-private, not exportable: content is absent.
	assert.Empty(t, file.Data.Sites[1].ResultState)
}
