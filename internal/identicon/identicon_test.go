package identicon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"savedhi/internal/model"
)

func TestDeriveDeterministic(t *testing.T) {
	a := Derive("Robert Lee Mitchell", "banana colored duckling")
	b := Derive("Robert Lee Mitchell", "banana colored duckling")
	assert.Equal(t, a, b)
	assert.NotEqual(t, model.ColorUnset, a.Color)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ic := Derive("Robert Lee Mitchell", "banana colored duckling")
	encoded := Encode(ic)
	decoded := Decode(encoded)
	assert.Equal(t, ic, decoded)
}

func TestDecodeEmptyIsUnset(t *testing.T) {
	assert.True(t, Decode("").IsUnset())
}

func TestDecodeRejectsOutOfRangeColor(t *testing.T) {
	assert.True(t, Decode("9:╔█╗◈").IsUnset())
}

func TestDecodeRejectsGarbageGlyphs(t *testing.T) {
	assert.True(t, Decode("1:xyz").IsUnset())
}
