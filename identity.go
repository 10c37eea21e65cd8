package savedhi

import (
	"savedhi/internal/identicon"
	"savedhi/internal/userkey"
)

// DeriveUserKey computes the user key for (userName, userSecret) under
// algo. Deterministic: identical inputs always yield identical bytes and
// fingerprint. Call UserKey.Zero on the result once it is no longer needed.
func DeriveUserKey(userName, userSecret string, algo AlgorithmVersion) (*UserKey, error) {
	return userkey.Derive(userName, userSecret, algo)
}

// UserKeyFingerprint returns the hex-encoded SHA-256 fingerprint of key,
// the value stored as a marshalled file's key ID.
func UserKeyFingerprint(key *UserKey) string {
	return userkey.Fingerprint(key)
}

// DeriveIdenticon computes the deterministic pictograph avatar for
// (userName, userSecret).
func DeriveIdenticon(userName, userSecret string) Identicon {
	return identicon.Derive(userName, userSecret)
}

// EncodeIdenticon renders ic as "{color}:{leftArm}{body}{rightArm}{accessory}",
// or "" if ic is unset.
func EncodeIdenticon(ic Identicon) string {
	return identicon.Encode(ic)
}

// DecodeIdenticon parses s back into an Identicon. Any malformed input
// yields the unset identicon rather than an error.
func DecodeIdenticon(s string) Identicon {
	return identicon.Decode(s)
}
