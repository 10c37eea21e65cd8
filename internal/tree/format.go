package tree

import "strconv"

// formatShortestG mirrors C's "%g" semantics closely enough for this
// engine's purposes: the shortest decimal representation that round-trips
// to the same float64.
func formatShortestG(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
