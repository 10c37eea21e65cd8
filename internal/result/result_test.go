package result

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savedhi/internal/model"
	"savedhi/internal/primitives"
	"savedhi/internal/sitekey"
	"savedhi/internal/userkey"
)

func testKeys(t *testing.T) (*model.UserKey, *model.SiteKey) {
	t.Helper()
	uk, err := userkey.Derive("Robert Lee Mitchell", "banana colored duckling", model.V3)
	require.NoError(t, err)
	sk, err := sitekey.Derive(uk, "masterpasswordapp.com", 1, model.Authentication, "", model.V3, time.Time{})
	require.NoError(t, err)
	return uk, sk
}

func TestTemplateLongResultHasTemplateLength(t *testing.T) {
	_, sk := testKeys(t)
	out, err := Template(sk, model.TemplateLong)
	require.NoError(t, err)
	assert.Len(t, out, 14)
}

func TestTemplateNameResultIsNineLowercase(t *testing.T) {
	_, sk := testKeys(t)
	out, err := Template(sk, model.TemplateName)
	require.NoError(t, err)
	assert.Len(t, out, 9)
	for _, r := range out {
		assert.True(t, r >= 'a' && r <= 'z', "expected lowercase letter, got %q", r)
	}
}

func TestTemplatePINResultIsFourDigits(t *testing.T) {
	_, sk := testKeys(t)
	out, err := Template(sk, model.TemplatePIN)
	require.NoError(t, err)
	assert.Len(t, out, 4)
	for _, r := range out {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestTemplateCharactersMatchClassInventory(t *testing.T) {
	// Every Basic template only uses the 'a' and 'n' classes, so every
	// output character must fall in their union regardless of which of
	// the three candidate templates the site key selects.
	_, sk := testKeys(t)
	out, err := Template(sk, model.TemplateBasic)
	require.NoError(t, err)
	union := classCharacters['a'] + classCharacters['n']
	for _, c := range []byte(out) {
		assert.Contains(t, union, string(c))
	}
}

func TestTemplatePhraseAllVariantsResolve(t *testing.T) {
	// TemplateSeedByte(keyBytes, 0) % len(templates) selects the candidate
	// template; force each of the three TemplatePhrase candidates in turn
	// by controlling siteKey.Bytes[0] directly, so every entry in the
	// inventory is exercised rather than leaving two of three to chance.
	templates := templateInventories[model.TemplatePhrase]
	require.Len(t, templates, 3)

	for i, template := range templates {
		sk := &model.SiteKey{Algorithm: model.V3}
		sk.Bytes[0] = byte(i)
		out, err := Template(sk, model.TemplatePhrase)
		require.NoError(t, err, "template index %d (%q) must not error", i, template)
		assert.Len(t, out, len(template))
	}
}

func TestTemplateRejectsUnrecognizedResultType(t *testing.T) {
	_, sk := testKeys(t)
	_, err := Template(sk, model.StatePersonal)
	assert.Equal(t, model.KindUnsupportedResultType, model.KindOf(err))
}

func TestStatefulRoundTrip(t *testing.T) {
	uk, _ := testKeys(t)
	ciphertext, err := Encrypt(uk, "my recovery answer")
	require.NoError(t, err)
	plaintext, err := Decrypt(uk, ciphertext)
	require.NoError(t, err)
	// Encrypt zero-pads to the block boundary; Decrypt returns the
	// padded bytes back verbatim (legacy no-padding contract, spec §9).
	assert.Equal(t, "my recovery answer\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00", plaintext)
}

func TestStatefulPassesThroughNonBase64Legacy(t *testing.T) {
	uk, _ := testKeys(t)
	out, err := Decrypt(uk, "not-base64-length-ish")
	require.NoError(t, err)
	assert.Equal(t, "not-base64-length-ish", out)
}

func TestDeriveKeyDefaultBits(t *testing.T) {
	_, sk := testKeys(t)
	out, err := Derive(sk, "")
	require.NoError(t, err)
	decoded := decodeBase64Len(t, out)
	assert.Equal(t, 64, decoded)
}

func TestDeriveKeyCustomBits(t *testing.T) {
	_, sk := testKeys(t)
	out, err := Derive(sk, "256")
	require.NoError(t, err)
	decoded := decodeBase64Len(t, out)
	assert.Equal(t, 32, decoded)
}

func TestDeriveKeyRejectsOutOfRangeBits(t *testing.T) {
	_, sk := testKeys(t)
	_, err := Derive(sk, "1024")
	assert.Equal(t, model.KindFormatIllegal, model.KindOf(err))

	_, err = Derive(sk, "100")
	assert.Equal(t, model.KindFormatIllegal, model.KindOf(err))

	_, err = Derive(sk, "129")
	assert.Equal(t, model.KindFormatIllegal, model.KindOf(err))
}

func decodeBase64Len(t *testing.T, s string) int {
	t.Helper()
	decoded, err := primitives.Base64Decode(s)
	require.NoError(t, err)
	return len(decoded)
}
