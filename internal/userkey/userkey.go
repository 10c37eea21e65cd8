// Package userkey implements the C component: deriving a 64-byte user key
// (and its fingerprint) from a user's name and secret via scrypt.
package userkey

import (
	"encoding/hex"

	"savedhi/internal/model"
	"savedhi/internal/primitives"
	"savedhi/internal/version"
)

// Derive computes the user key for (userName, userSecret) under algo.
// Deterministic: identical inputs always produce identical bytes and
// fingerprint (spec §8 invariant).
func Derive(userName, userSecret string, algo model.AlgorithmVersion) (*model.UserKey, error) {
	if userName == "" || userSecret == "" {
		return nil, model.NewError(model.KindMissingInput, "user name and secret are required")
	}
	if !algo.Valid() {
		return nil, model.NewError(model.KindUnsupportedVersion, "unsupported algorithm version")
	}

	disp := version.For(algo)
	salt := buildSalt(disp, userName)

	keyBytes, err := primitives.Scrypt([]byte(userSecret), salt, primitives.UserKeyBytes)
	if err != nil {
		return nil, err
	}

	uk := &model.UserKey{Algorithm: algo}
	copy(uk.Bytes[:], keyBytes)
	uk.Fingerprint = Fingerprint(uk)
	return uk, nil
}

// buildSalt builds com.lyndir.masterpassword || length_prefix(userName) || userName_bytes.
func buildSalt(disp version.Dispatcher, userName string) []byte {
	salt := []byte(model.Authentication.Scope())
	salt = primitives.BEUint32(salt, disp.UserNameLengthPrefix(userName))
	salt = append(salt, []byte(userName)...)
	return salt
}

// Fingerprint returns the hex-encoded SHA-256 digest of the key's bytes —
// the keyID used to authenticate a secret against a stored user record.
func Fingerprint(uk *model.UserKey) string {
	digest := primitives.SHA256(uk.Bytes[:])
	return hex.EncodeToString(digest)
}
