package version

import (
	"savedhi/internal/model"
	"savedhi/internal/primitives"
)

// v3 (Current) switches the last remaining codepoint-count field, the
// userName length prefix, to a UTF-8 byte count.
type v3 struct{ v2 }

func (v3) Version() model.AlgorithmVersion { return model.V3 }

func (v3) UserNameLengthPrefix(userName string) uint32 {
	return primitives.UTF8ByteCount(userName)
}
