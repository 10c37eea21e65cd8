// Package savedhi implements a deterministic credential derivation engine:
// given a user's name and secret phrase plus a site descriptor, it computes
// a reproducible password, login handle, recovery answer, symmetric key, or
// encrypted/decrypted stateful blob. No credential is ever persisted except
// in its AES-encrypted stateful form.
package savedhi

import (
	"savedhi/internal/model"
)

// AlgorithmVersion selects the byte-ordering and string-length semantics a
// derivation runs under. Current is always the newest defined version.
type AlgorithmVersion = model.AlgorithmVersion

const (
	V0      = model.V0
	V1      = model.V1
	V2      = model.V2
	V3      = model.V3
	Current = model.Current
)

// KeyPurpose selects the scope string mixed into a site key's salt.
type KeyPurpose = model.KeyPurpose

const (
	Authentication = model.Authentication
	Identification = model.Identification
	Recovery       = model.Recovery
)

// Counter is a site key's generation counter. CounterTOTP (0) resolves to
// the current 5-minute wall-clock bucket instead of a fixed ordinal.
type Counter = model.Counter

const (
	CounterTOTP    = model.CounterTOTP
	CounterInitial = model.CounterInitial
)

// ResultType tags what a derivation produces and how it may be exported.
type ResultType = model.ResultType

const (
	NoResult       = model.None
	TemplateMaximum = model.TemplateMaximum
	TemplateLong    = model.TemplateLong
	TemplateMedium  = model.TemplateMedium
	TemplateShort   = model.TemplateShort
	TemplateBasic   = model.TemplateBasic
	TemplatePIN     = model.TemplatePIN
	TemplateName    = model.TemplateName
	TemplatePhrase  = model.TemplatePhrase
	StatePersonal   = model.StatePersonal
	StateDevice     = model.StateDevice
	DeriveKey       = model.DeriveKey
)

// Class is the mutually-exclusive branch a ResultType belongs to.
type Class = model.Class

const (
	ClassNone     = model.ClassNone
	ClassTemplate = model.ClassTemplate
	ClassStateful = model.ClassStateful
	ClassDerive   = model.ClassDerive
)

// UserKey is the scrypt-derived 64-byte secret for one (userName,
// userSecret, algorithm) triple. Call Zero once it is no longer needed.
type UserKey = model.UserKey

// SiteKey is the HMAC-SHA256-derived 32-byte secret for one site
// descriptor. Call Zero once it is no longer needed.
type SiteKey = model.SiteKey

// Identicon is the deterministic four-glyph, colored pictograph avatar
// derived from a user's name and secret.
type Identicon = model.Identicon

const (
	ColorRed     = model.ColorRed
	ColorGreen   = model.ColorGreen
	ColorYellow  = model.ColorYellow
	ColorBlue    = model.ColorBlue
	ColorMagenta = model.ColorMagenta
	ColorCyan    = model.ColorCyan
	ColorMono    = model.ColorMono
)
