package savedhi

import (
	"time"

	"savedhi/internal/result"
	"savedhi/internal/sitekey"
)

// DeriveSiteKey computes the site key for siteName under userKey, at the
// given counter/purpose/context. now is only consulted when counter is
// CounterTOTP; pass time.Now in production and a fixed instant in tests.
func DeriveSiteKey(userKey *UserKey, siteName string, counter Counter, purpose KeyPurpose, context string, algo AlgorithmVersion, now time.Time) (*SiteKey, error) {
	return sitekey.Derive(userKey, siteName, counter, purpose, context, algo, now)
}

// SiteResult materializes resultType against siteKey, decrypting
// resultParam under userKey when resultType is stateful. userKey may be nil
// for Template and Derive result types.
func SiteResult(userKey *UserKey, siteKey *SiteKey, resultType ResultType, resultParam string) (string, error) {
	return result.Materialize(userKey, siteKey, resultType, resultParam)
}

// EncryptState AES-encrypts plaintext under userKey for storage as a
// stateful result's persisted state.
func EncryptState(userKey *UserKey, plaintext string) (string, error) {
	return result.Encrypt(userKey, plaintext)
}

// DecryptState is the inverse of EncryptState; a non-base64-shaped state is
// tolerated and returned verbatim (legacy passthrough).
func DecryptState(userKey *UserKey, state string) (string, error) {
	return result.Decrypt(userKey, state)
}

// DeriveSubkey computes a blake2b(siteKey, resultParam/8 bytes) binary
// subkey, base64-encoded. resultParam is a decimal bit count in [128, 512],
// a multiple of 8; empty defaults to 512.
func DeriveSubkey(siteKey *SiteKey, resultParam string) (string, error) {
	return result.Derive(siteKey, resultParam)
}
