package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScryptDeterministic(t *testing.T) {
	a, err := Scrypt([]byte("banana colored duckling"), []byte("salt"), 64)
	require.NoError(t, err)
	b, err := Scrypt([]byte("banana colored duckling"), []byte("salt"), 64)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestHMACSHA256Deterministic(t *testing.T) {
	a := HMACSHA256([]byte("key"), []byte("message"))
	b := HMACSHA256([]byte("key"), []byte("message"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestAESRoundTrip(t *testing.T) {
	var key [16]byte
	copy(key[:], "0123456789abcdef")
	plaintext := []byte("0123456789abcdef") // one block

	ciphertext, err := AES128CBCEncrypt(key, plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := AES128CBCDecrypt(key, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestAESRejectsUnalignedPlaintext(t *testing.T) {
	var key [16]byte
	_, err := AES128CBCEncrypt(key, []byte("not16bytes"))
	assert.Error(t, err)
}

func TestBlake2bOutputLength(t *testing.T) {
	for _, n := range []int{16, 32, 64} {
		out, err := Blake2b([]byte("sitekeybytes"), n)
		require.NoError(t, err)
		assert.Len(t, out, n)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	orig := []byte{1, 2, 3, 4, 5}
	enc := Base64Encode(orig)
	dec, err := Base64Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, orig, dec)
}

func TestUTF8Counts(t *testing.T) {
	// "→" is one codepoint, three UTF-8 bytes: the exact divergence §8
	// calls out between V0/V1 and V2/V3 length-prefix semantics.
	assert.Equal(t, uint32(1), UTF8CharCount("→"))
	assert.Equal(t, uint32(3), UTF8ByteCount("→"))
}

func TestLooksBase64(t *testing.T) {
	assert.True(t, LooksBase64("QUJD"))
	assert.False(t, LooksBase64("not-base64-length"))
}
