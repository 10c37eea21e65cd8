package version

import (
	"savedhi/internal/model"
	"savedhi/internal/primitives"
)

// v2 switches siteName and context length prefixes to UTF-8 byte counts;
// userName stays a codepoint count until v3.
type v2 struct{ v1 }

func (v2) Version() model.AlgorithmVersion { return model.V2 }

func (v2) SiteNameLengthPrefix(siteName string) uint32 {
	return primitives.UTF8ByteCount(siteName)
}

func (v2) ContextLengthPrefix(context string) uint32 {
	return primitives.UTF8ByteCount(context)
}
