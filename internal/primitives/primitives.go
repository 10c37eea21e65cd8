// Package primitives is a thin, trusted-leaf facade over the cryptographic
// primitives the engine builds on: scrypt, HMAC-SHA256, SHA-256,
// AES-128-CBC, blake2b, base64, and UTF-8 byte/codepoint counting. None of
// these functions make decisions about the engine's semantics; they only
// wrap the underlying library call and translate its failure mode into a
// *model.Error.
package primitives

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/scrypt"

	"savedhi/internal/model"
)

const (
	ScryptN      = 32768
	ScryptR      = 8
	ScryptP      = 2
	UserKeyBytes = 64
	SiteKeyBytes = 32
)

// Scrypt derives outLen bytes from secret and salt with the fixed, legacy
// cost parameters N=32768, r=8, p=2. These parameters are load-bearing
// security choices and must never be weakened (spec §5).
func Scrypt(secret, salt []byte, outLen int) ([]byte, error) {
	out, err := scrypt.Key(secret, salt, ScryptN, ScryptR, ScryptP, outLen)
	if err != nil {
		return nil, model.WrapError(model.KindPrimitiveFailure, "scrypt derivation failed", err)
	}
	return out, nil
}

// HMACSHA256 returns HMAC-SHA256(key, message).
func HMACSHA256(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// SHA256 returns the SHA-256 digest of buf.
func SHA256(buf []byte) []byte {
	sum := sha256.Sum256(buf)
	return sum[:]
}

// AES128CBCEncrypt encrypts plaintext under the first 16 bytes of key using
// AES-128-CBC with an all-zero IV and no padding, per the legacy wire
// contract of spec §4.1/§9. plaintext must be a multiple of the AES block
// size; callers that need padding apply it themselves before calling.
func AES128CBCEncrypt(key [16]byte, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, model.WrapError(model.KindPrimitiveFailure, "aes cipher init failed", err)
	}
	if len(plaintext)%aes.BlockSize != 0 {
		return nil, model.NewError(model.KindPrimitiveFailure, "plaintext is not a multiple of the AES block size")
	}
	iv := make([]byte, aes.BlockSize)
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)
	return ciphertext, nil
}

// AES128CBCDecrypt is the inverse of AES128CBCEncrypt.
func AES128CBCDecrypt(key [16]byte, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, model.WrapError(model.KindPrimitiveFailure, "aes cipher init failed", err)
	}
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, model.NewError(model.KindMalformedState, "ciphertext is not a multiple of the AES block size")
	}
	iv := make([]byte, aes.BlockSize)
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	return plaintext, nil
}

// Blake2b returns a keyed blake2b digest of outLen bytes, outLen in
// [16, 64]. Only the keyed, unpersonalized form is computed: there are no
// personalization, id or context parameters.
func Blake2b(key []byte, outLen int) ([]byte, error) {
	h, err := blake2b.New(outLen, key)
	if err != nil {
		return nil, model.WrapError(model.KindPrimitiveFailure, "blake2b init failed", err)
	}
	return h.Sum(nil), nil
}

// Base64Encode encodes buf with the standard (non-URL) alphabet.
func Base64Encode(buf []byte) string {
	return base64.StdEncoding.EncodeToString(buf)
}

// Base64Decode decodes s with the standard (non-URL) alphabet.
func Base64Decode(s string) ([]byte, error) {
	out, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, model.WrapError(model.KindPrimitiveFailure, "base64 decode failed", err)
	}
	return out, nil
}

// LooksBase64 reports whether s has a length that is a multiple of 4, the
// cheap precondition the stateful branch uses to decide whether a stored
// value is ciphertext or a legacy cleartext passthrough (spec §4.5).
func LooksBase64(s string) bool {
	return len(s)%4 == 0
}

// UTF8CharCount counts codepoints in s.
func UTF8CharCount(s string) uint32 {
	return uint32(utf8.RuneCountInString(s))
}

// UTF8ByteCount counts bytes in s.
func UTF8ByteCount(s string) uint32 {
	return uint32(len(s))
}

// BEUint32 appends the big-endian encoding of v to buf.
func BEUint32(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// BytesEqual reports whether a and b are byte-identical. The comparison is
// not constant-time.
func BytesEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}
