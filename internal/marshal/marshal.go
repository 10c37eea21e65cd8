package marshal

import (
	"time"

	"go.uber.org/zap"

	"savedhi/internal/model"
	"savedhi/internal/result"
	"savedhi/internal/sitekey"
	"savedhi/internal/userkey"
)

// Logger is the package-level structured logger. It defaults to a no-op so
// the library is silent unless a caller opts in (spec §1 EXPANDED ambient
// stack) — marshal read/write only ever log operational metadata (format,
// site counts, fingerprint mismatches), never key material or plaintext.
var Logger = zap.NewNop()

// WriteOptions configures Write.
type WriteOptions struct {
	Format Format
	// Redacted selects the redacted branch of the write algorithm (spec
	// §4.8). When false, UserKeyProvider must be set.
	Redacted bool
	// UserKeyProvider derives the user key needed to recompute cleartext
	// fields. Required when Redacted is false.
	UserKeyProvider KeyProvider
	// Now is the injected clock used to stamp the export date. Defaults
	// to time.Now if nil.
	Now func() time.Time
}

// ReadOptions configures Read.
type ReadOptions struct {
	// UserKeyProvider, if set, is used to validate the file's key ID
	// against a freshly derived user key (spec §4.8 step 2) and, for
	// cleartext files, to re-encrypt every state field for in-memory
	// storage (spec §4.8 step 3).
	UserKeyProvider KeyProvider
}

func (o WriteOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Write serializes user in opts.Format, per the write algorithm of spec
// §4.8.
func Write(user *MarshalledUser, opts WriteOptions) ([]byte, error) {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(user, opts)
	case FormatFlat:
		return writeFlat(user, opts)
	default:
		return nil, model.NewError(model.KindFormatStructure, "unsupported write format")
	}
}

// Read parses data (sniffing its format) into a MarshalledFile, per the
// read algorithm of spec §4.8. Errors are carried in the returned value's
// Err field rather than as a second return, matching spec §7's
// propagation policy for marshal paths.
func Read(data []byte, opts ReadOptions) *MarshalledFile {
	switch DetectFormat(data) {
	case FormatJSON:
		return readJSON(data, opts)
	case FormatFlat:
		return readFlat(data, opts)
	default:
		return NewErrorFile(model.NewError(model.KindFormatStructure, "unrecognized file format"))
	}
}

// purposeFor returns the key purpose that governs a field's site-key
// derivation. Passwords authenticate, login names identify, recovery
// answers answer.
type fieldKind uint8

const (
	fieldPassword fieldKind = iota
	fieldLogin
	fieldAnswer
)

func purposeFor(kind fieldKind) model.KeyPurpose {
	switch kind {
	case fieldLogin:
		return model.Identification
	case fieldAnswer:
		return model.Recovery
	default:
		return model.Authentication
	}
}

// exportValue recomputes the cleartext value of a site field: it derives
// the site key for (siteName, counter, purpose) under userKey and
// materializes resultType against it, decrypting storedState when
// resultType is stateful.
func exportValue(userKey *model.UserKey, siteName string, counter model.Counter, kind fieldKind, resultType model.ResultType, storedState string, now time.Time) (string, error) {
	sk, err := sitekey.Derive(userKey, siteName, counter, purposeFor(kind), "", userKey.Algorithm, now)
	if err != nil {
		return "", err
	}
	return result.Materialize(userKey, sk, resultType, storedState)
}

// reencryptValue takes a cleartext value read from a cleartext file and
// re-encrypts it under userKey for uniform in-memory storage (spec §4.8
// step 3: "in-memory representation is always encrypted").
func reencryptValue(userKey *model.UserKey, clear string) (string, error) {
	return result.Encrypt(userKey, clear)
}

// verifyFingerprint derives a user key for (algo, userName) via provider
// and compares its fingerprint against expected, per spec §4.8 step 2.
func verifyFingerprint(provider KeyProvider, algo model.AlgorithmVersion, userName, expected string) (*model.UserKey, error) {
	if provider == nil {
		return nil, nil
	}
	key, err := provider(algo, userName)
	if err != nil {
		return nil, err
	}
	fp := userkey.Fingerprint(key)
	if expected != "" && fp != expected {
		Logger.Warn("user secret does not match stored key ID", zap.String("user", userName))
		return nil, model.NewError(model.KindUserSecretMismatch, "derived key fingerprint does not match stored key ID")
	}
	return key, nil
}
