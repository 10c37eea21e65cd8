package savedhi

import "savedhi/internal/model"

// Kind is the closed set of error categories a caller can distinguish
// without string matching.
type Kind = model.Kind

const (
	KindMissingInput          = model.KindMissingInput
	KindUnsupportedVersion    = model.KindUnsupportedVersion
	KindUnsupportedResultType = model.KindUnsupportedResultType
	KindPrimitiveFailure      = model.KindPrimitiveFailure
	KindMalformedState        = model.KindMalformedState
	KindFormatStructure       = model.KindFormatStructure
	KindFormatMissing         = model.KindFormatMissing
	KindFormatIllegal         = model.KindFormatIllegal
	KindUserSecretMismatch    = model.KindUserSecretMismatch
	KindInternal              = model.KindInternal
)

// Error is the engine's error type: a Kind plus a message and, often, a
// wrapped cause carrying the original failure's stack (github.com/pkg/errors).
type Error = model.Error

// KindOf extracts the Kind from err, or KindInternal if err is not (and does
// not wrap) an *Error.
func KindOf(err error) Kind {
	return model.KindOf(err)
}
