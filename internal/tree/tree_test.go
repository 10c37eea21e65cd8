package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCreatesIntermediateObjects(t *testing.T) {
	root := New()
	root.Get("user", "full_name").SetStr("Robert")
	node, ok := root.Find("user", "full_name")
	require.True(t, ok)
	assert.Equal(t, "Robert", node.GetStr())
}

func TestFindNeverMutates(t *testing.T) {
	root := New()
	_, ok := root.Find("missing", "path")
	assert.False(t, ok)
	assert.True(t, root.IsNull())
}

func TestGetNumDefaults(t *testing.T) {
	n := New()
	assert.True(t, n.GetNum() != n.GetNum()) // NaN != NaN
	n.SetBool(false)
	assert.Equal(t, float64(0), n.GetNum())
}

func TestFilterZeroesDroppedChildren(t *testing.T) {
	root := New()
	root.Get("keep").SetStr("yes")
	root.Get("drop").SetStr("no")
	root.Filter(func(c *Node) bool { return c.Key() == "keep" })
	_, ok := root.Find("drop")
	assert.False(t, ok)
	kept, ok := root.Find("keep")
	require.True(t, ok)
	assert.Equal(t, "yes", kept.GetStr())
}

func TestMarshalOmitsNullAndEmptyObject(t *testing.T) {
	root := New()
	root.Get("present").SetStr("x")
	root.Get("absent") // left null
	root.Get("empty")  // becomes an empty object via Find-without-Get... force it:
	root.Get("empty").Get("__never_set__")
	root.Get("empty").Filter(func(*Node) bool { return false })

	out, err := MarshalJSON(root)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"present":"x"`)
	assert.NotContains(t, string(out), "absent")
	assert.NotContains(t, string(out), "empty")
}

func TestMarshalPreservesInsertionOrder(t *testing.T) {
	root := New()
	root.Get("z").SetStr("1")
	root.Get("a").SetStr("2")
	out, err := MarshalJSON(root)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"1","a":"2"}`, string(out))
}

func TestParseRoundTripPreservesOrderAndNumberDisplay(t *testing.T) {
	input := []byte(`{"b":1.50,"a":"text","c":{"nested":true}}`)
	root, err := ParseJSON(input)
	require.NoError(t, err)

	out, err := MarshalJSON(root)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1.50,"a":"text","c":{"nested":true}}`, string(out))
}

func TestParseArray(t *testing.T) {
	root, err := ParseJSON([]byte(`[1,2,3]`))
	require.NoError(t, err)
	assert.Equal(t, KindArray, root.Kind())
	assert.Len(t, root.Children(), 3)
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := ParseJSON([]byte(`{not json`))
	assert.Error(t, err)
}
