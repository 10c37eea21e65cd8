package result

import (
	"savedhi/internal/model"
	"savedhi/internal/primitives"
)

// Decrypt materializes a stateful-class result: it decodes resultParam as
// base64 ciphertext and AES-128-CBC decrypts it under userKey. A
// resultParam whose length isn't a multiple of 4 isn't base64 at all and
// is tolerated as a legacy unredacted login, returned verbatim (spec
// §4.5, §7 MalformedState).
func Decrypt(userKey *model.UserKey, resultParam string) (string, error) {
	if !primitives.LooksBase64(resultParam) {
		return resultParam, nil
	}

	cipherBuf, err := primitives.Base64Decode(resultParam)
	if err != nil {
		return resultParam, model.WrapError(model.KindMalformedState, "state is not valid base64", err)
	}

	var key [16]byte
	copy(key[:], userKey.Bytes[:16])

	plaintext, err := primitives.AES128CBCDecrypt(key, cipherBuf)
	if err != nil {
		return "", model.WrapError(model.KindMalformedState, "state ciphertext failed to decrypt", err)
	}
	return string(plaintext), nil
}

// Encrypt is the inverse of Decrypt: it pads plaintext to the AES block
// boundary with trailing zero bytes (matching the legacy no-padding wire
// contract, which requires the caller to submit block-aligned state or
// accept zero-padding) and returns base64(AES-128-CBC(plaintext)).
func Encrypt(userKey *model.UserKey, plaintext string) (string, error) {
	var key [16]byte
	copy(key[:], userKey.Bytes[:16])

	padded := padToBlock([]byte(plaintext))
	ciphertext, err := primitives.AES128CBCEncrypt(key, padded)
	if err != nil {
		return "", err
	}
	return primitives.Base64Encode(ciphertext), nil
}

const aesBlockSize = 16

func padToBlock(buf []byte) []byte {
	remainder := len(buf) % aesBlockSize
	if remainder == 0 {
		return buf
	}
	padded := make([]byte, len(buf)+(aesBlockSize-remainder))
	copy(padded, buf)
	return padded
}
