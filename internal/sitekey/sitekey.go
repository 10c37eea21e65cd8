// Package sitekey implements the D component: deriving a site's 32-byte
// HMAC-SHA256 key from a user key and a site descriptor.
package sitekey

import (
	"encoding/hex"
	"time"

	"savedhi/internal/model"
	"savedhi/internal/primitives"
	"savedhi/internal/version"
)

// totpWindow is the width of the time bucket used when counter is the TOTP
// sentinel (0): spec §4.4.
const totpWindow = 5 * time.Minute

// Derive computes the site key for siteName under userKey, at the given
// counter/purpose/context. now is the wall clock used only when counter is
// the TOTP sentinel (0); callers pass time.Now in production and a fixed
// instant in tests.
func Derive(userKey *model.UserKey, siteName string, counter model.Counter, purpose model.KeyPurpose, context string, algo model.AlgorithmVersion, now time.Time) (*model.SiteKey, error) {
	if siteName == "" {
		return nil, model.NewError(model.KindMissingInput, "site name is required")
	}
	if !algo.Valid() {
		return nil, model.NewError(model.KindUnsupportedVersion, "unsupported algorithm version")
	}

	disp := version.For(algo)
	effectiveCounter := EffectiveCounter(counter, now)
	salt := buildSalt(disp, siteName, effectiveCounter, purpose, context)

	keyBytes := primitives.HMACSHA256(userKey.Bytes[:], salt)

	sk := &model.SiteKey{Algorithm: algo}
	copy(sk.Bytes[:], keyBytes)
	sk.Fingerprint = fingerprint(sk)
	return sk, nil
}

// EffectiveCounter resolves the TOTP sentinel (0) to the current 5-minute
// wall-clock bucket; any other counter passes through unchanged.
func EffectiveCounter(counter model.Counter, now time.Time) uint32 {
	if counter != model.CounterTOTP {
		return uint32(counter)
	}
	bucket := now.Unix() / int64(totpWindow/time.Second) * int64(totpWindow/time.Second)
	return uint32(bucket)
}

// buildSalt builds:
//
//	scope(purpose) || length_prefix(siteName) || siteName
//	             || BE32(effectiveCounter)
//	             || [ length_prefix(context) || context ]  (iff context != "")
func buildSalt(disp version.Dispatcher, siteName string, effectiveCounter uint32, purpose model.KeyPurpose, context string) []byte {
	salt := []byte(purpose.Scope())
	salt = primitives.BEUint32(salt, disp.SiteNameLengthPrefix(siteName))
	salt = append(salt, []byte(siteName)...)
	salt = primitives.BEUint32(salt, effectiveCounter)
	if context != "" {
		salt = primitives.BEUint32(salt, disp.ContextLengthPrefix(context))
		salt = append(salt, []byte(context)...)
	}
	return salt
}

func fingerprint(sk *model.SiteKey) string {
	digest := primitives.SHA256(sk.Bytes[:])
	return hex.EncodeToString(digest)
}
