package version

import (
	"savedhi/internal/model"
	"savedhi/internal/primitives"
)

// v0 is the base implementation: every length prefix is a UTF-8 codepoint
// count, and the template seed byte is computed via the legacy 16-bit
// big-endian reinterpretation (spec §4.5 step 2, §9 open question — this
// is intentional and preserved bit-exactly, not "corrected").
type v0 struct{}

func (v0) Version() model.AlgorithmVersion { return model.V0 }

func (v0) UserNameLengthPrefix(userName string) uint32 {
	return primitives.UTF8CharCount(userName)
}

func (v0) SiteNameLengthPrefix(siteName string) uint32 {
	return primitives.UTF8CharCount(siteName)
}

func (v0) ContextLengthPrefix(context string) uint32 {
	return primitives.UTF8CharCount(context)
}

// TemplateSeedByte reinterprets (siteKey[idx], 0) as a big-endian u16 —
// equivalently siteKey[idx] << 8, with the low byte forced to zero. Taken
// mod an inventory count n, this matches the plain-byte form (v1+) only
// when n divides 255 (e.g. 3, 5, 17); for other counts the two differ, so
// they must not be unified.
func (v0) TemplateSeedByte(siteKey []byte, idx int) uint16 {
	return uint16(siteKey[idx]) << 8
}
