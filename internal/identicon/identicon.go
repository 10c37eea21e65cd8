// Package identicon implements the B component: a deterministic textual
// avatar derived from HMAC-SHA256(secret, name), plus its string
// encoding/decoding.
package identicon

import (
	"strconv"
	"strings"

	"savedhi/internal/model"
	"savedhi/internal/primitives"
)

// Fixed inventories, order is contractual (spec §6).
var (
	leftArms   = []string{"╔", "╚", "╰", "═"}
	bodies     = []string{"█", "░", "▒", "▓", "☺", "☻"}
	rightArms  = []string{"╗", "╝", "╯", "═"}
	accessories = []string{
		"◈", "◎", "◐", "◑", "◒", "◓", "☀", "☁", "☂", "☃", "☄", "★", "☆", "☎", "☏",
		"⎈", "⌂", "☘", "☢", "☣", "☕", "⌚", "⌛", "⏰", "⚡", "⛄", "⛅", "☔", "♔", "♕",
		"♖", "♗", "♘", "♙", "♚", "♛", "♜", "♝", "♞", "♟", "♨", "♩", "♪", "♫", "⚐",
		"⚑", "⚔", "⚖", "⚙", "⚠", "⌘", "⏎", "✄", "✆", "✈", "✉", "✌",
	}
)

// Derive computes the identicon for (userName, userSecret).
func Derive(userName, userSecret string) model.Identicon {
	seed := primitives.HMACSHA256([]byte(userSecret), []byte(userName))
	return model.Identicon{
		LeftArm:   leftArms[int(seed[0])%len(leftArms)],
		Body:      bodies[int(seed[1])%len(bodies)],
		RightArm:  rightArms[int(seed[2])%len(rightArms)],
		Accessory: accessories[int(seed[3])%len(accessories)],
		Color:     model.Color(int(seed[4])%7 + 1),
	}
}

// Encode renders ic as "{color}:{leftArm}{body}{rightArm}{accessory}".
func Encode(ic model.Identicon) string {
	if ic.IsUnset() {
		return ""
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(ic.Color)))
	b.WriteByte(':')
	b.WriteString(ic.LeftArm)
	b.WriteString(ic.Body)
	b.WriteString(ic.RightArm)
	b.WriteString(ic.Accessory)
	return b.String()
}

// Decode parses the "{color}:{glyphs}" form back into an Identicon. Any
// parse failure — empty input, out-of-range color, or a glyph sequence
// that doesn't greedily match the known inventories in order — returns
// the unset identicon (spec §4.2).
func Decode(s string) model.Identicon {
	if s == "" {
		return model.Identicon{}
	}

	colorStr, rest, found := strings.Cut(s, ":")
	if !found {
		return model.Identicon{}
	}
	colorNum, err := strconv.Atoi(colorStr)
	if err != nil || colorNum < 1 || colorNum > 7 {
		return model.Identicon{}
	}

	leftArm, rest, ok := matchPrefix(rest, leftArms)
	if !ok {
		return model.Identicon{}
	}
	body, rest, ok := matchPrefix(rest, bodies)
	if !ok {
		return model.Identicon{}
	}
	rightArm, rest, ok := matchPrefix(rest, rightArms)
	if !ok {
		return model.Identicon{}
	}
	accessory, rest, ok := matchPrefix(rest, accessories)
	if !ok || rest != "" {
		return model.Identicon{}
	}

	return model.Identicon{
		LeftArm:   leftArm,
		Body:      body,
		RightArm:  rightArm,
		Accessory: accessory,
		Color:     model.Color(colorNum),
	}
}

// matchPrefix greedily matches the longest entry of inventory that
// prefixes s, returning the match and the remainder.
func matchPrefix(s string, inventory []string) (match, rest string, ok bool) {
	best := ""
	for _, candidate := range inventory {
		if strings.HasPrefix(s, candidate) && len(candidate) > len(best) {
			best = candidate
		}
	}
	if best == "" {
		return "", s, false
	}
	return best, s[len(best):], true
}
