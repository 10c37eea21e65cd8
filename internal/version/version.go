// Package version implements the F component of the engine: the pure
// switch that routes user-key, site-key, and template-encoding through the
// four algorithm variants. Each version is a struct that embeds the
// previous version and overrides only the methods spec.md's tables call
// out as differing — V1/V2/V3 delegate to their predecessor everywhere
// else, so the per-version behavior is a closed set of overrides rather
// than four parallel copies.
package version

import "savedhi/internal/model"

// Dispatcher is the versioned-operation interface every derivation step in
// internal/userkey, internal/sitekey, and internal/result consults.
type Dispatcher interface {
	Version() model.AlgorithmVersion

	// UserNameLengthPrefix is the value placed in the userKeySalt length
	// prefix for the user's name (spec §4.3).
	UserNameLengthPrefix(userName string) uint32

	// SiteNameLengthPrefix is the value placed in the siteKeySalt length
	// prefix for the site's name (spec §4.4).
	SiteNameLengthPrefix(siteName string) uint32

	// ContextLengthPrefix is the value placed in the siteKeySalt length
	// prefix for the optional key context (spec §4.4), following the same
	// codepoint/byte rule as SiteNameLengthPrefix.
	ContextLengthPrefix(context string) uint32

	// TemplateSeedByte returns the site-key-derived byte used to select
	// position idx's template/character-class index (spec §4.5 step 2).
	// idx ranges over the template bytes consumed: idx 0 selects the
	// template itself, idx 1..len(template) select each character.
	TemplateSeedByte(siteKey []byte, idx int) uint16
}

// For returns the Dispatcher for algo. Callers must pass a valid version
// (see model.AlgorithmVersion.Valid()); For panics on an invalid one.
func For(algo model.AlgorithmVersion) Dispatcher {
	switch algo {
	case model.V0:
		return v0{}
	case model.V1:
		return v1{v0{}}
	case model.V2:
		return v2{v1{v0{}}}
	case model.V3:
		return v3{v2{v1{v0{}}}}
	default:
		panic("version: unsupported algorithm version")
	}
}
