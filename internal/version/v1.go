package version

import "savedhi/internal/model"

// v1 keeps v0's codepoint-count length prefixes but switches the template
// seed byte to the plain per-byte form.
type v1 struct{ v0 }

func (v1) Version() model.AlgorithmVersion { return model.V1 }

func (v1) TemplateSeedByte(siteKey []byte, idx int) uint16 {
	return uint16(siteKey[idx])
}
