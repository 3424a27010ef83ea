package sqlmarkup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScalars(t *testing.T) {
	n := normalizer{}

	cb, err := n.normalize(nil)
	require.NoError(t, err)
	assert.True(t, cb.suppressed)

	cb, err = n.normalize(5)
	require.NoError(t, err)
	require.Equal(t, 1, cb.positional())
	assert.Equal(t, bindValue{scalar: 5, typ: TypeString}, cb.entries[0].value)

	cb, err = normalizer{detect: true}.normalize(5)
	require.NoError(t, err)
	assert.Equal(t, TypeInt, cb.entries[0].value.typ)

	cb, err = n.normalize(func() interface{} { return []interface{}{1, "a"} })
	require.NoError(t, err)
	assert.Equal(t, 2, cb.positional())
}

func TestNormalizeList(t *testing.T) {
	n := normalizer{detect: true}

	cb, err := n.normalize([]interface{}{1, "a", nil, true})
	require.NoError(t, err)
	require.Len(t, cb.entries, 4)
	assert.False(t, cb.named)
	assert.Equal(t, TypeInt, cb.entries[0].value.typ)
	assert.Equal(t, TypeString, cb.entries[1].value.typ)
	assert.Equal(t, TypeNull, cb.entries[2].value.typ)
	assert.Equal(t, TypeBool, cb.entries[3].value.typ)

	// A typed slice is a list of values, not an IN-list
	cb, err = n.normalize([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, cb.positional())
	assert.False(t, cb.entries[0].value.isList)

	cb, err = n.normalize([]interface{}{[]int{18, 24}})
	require.NoError(t, err)
	require.Len(t, cb.entries, 1)
	v := cb.entries[0].value
	assert.True(t, v.isList)
	assert.Equal(t, []interface{}{18, 24}, v.list)
	assert.Equal(t, TypeInt, v.typ)

	cb, err = n.normalize([]interface{}{"x", Int()})
	require.NoError(t, err)
	require.Len(t, cb.entries, 2)
	assert.True(t, cb.entries[1].value.isList)
	assert.Empty(t, cb.entries[1].value.list)
	assert.Equal(t, TypeInt, cb.entries[1].value.typ)

	cb, err = n.normalize([]interface{}{String("a", "b"), Int().Set("id", 3)})
	require.NoError(t, err)
	require.Len(t, cb.entries, 2)
	assert.Equal(t, []interface{}{"a", "b"}, cb.entries[0].value.list)
	assert.Equal(t, 3, cb.entries[1].value.scalar)
	assert.Equal(t, TypeInt, cb.entries[1].value.typ)
}

func TestNormalizeMap(t *testing.T) {
	n := normalizer{}

	cb, err := n.normalize(map[string]interface{}{"a": 1, ":b": []string{"x", "y"}})
	require.NoError(t, err)
	assert.True(t, cb.named)
	assert.Equal(t, 0, cb.positional())

	v, ok := cb.lookup(":a")
	require.True(t, ok)
	assert.Equal(t, 1, v.scalar)
	v, ok = cb.lookup(":b")
	require.True(t, ok)
	assert.Equal(t, []interface{}{"x", "y"}, v.list)
	_, ok = cb.lookup(":c")
	assert.False(t, ok)

	cb, err = n.normalize(map[int]interface{}{1: "b", 0: "a"})
	require.NoError(t, err)
	require.Equal(t, 2, cb.positional())
	assert.Equal(t, "a", cb.entries[0].value.scalar)
	assert.Equal(t, "b", cb.entries[1].value.scalar)
}

func TestNormalizeHoistsNamedGroup(t *testing.T) {
	n := normalizer{}

	cb, err := n.normalize([]interface{}{Int().Set("ids", []int{1, 2})})
	require.NoError(t, err)
	assert.True(t, cb.named)
	v, ok := cb.lookup(":ids")
	require.True(t, ok)
	assert.Equal(t, TypeInt, v.typ)

	cb, err = n.normalize([]interface{}{map[string]interface{}{":a": 1}})
	require.NoError(t, err)
	assert.True(t, cb.named)
	_, ok = cb.lookup(":a")
	assert.True(t, ok)
}

func TestNormalizeErrors(t *testing.T) {
	n := normalizer{}
	for _, c := range []struct {
		bind interface{}
		err  error
	}{
		{[]interface{}{[]int{}}, ErrEmptyInList},
		{map[interface{}]interface{}{0: "x", "a": 1}, ErrMixedKeyShape},
		{map[int]interface{}{1: "x"}, ErrMixedKeyShape},
		{map[float64]interface{}{1: "x"}, ErrMixedKeyShape},
		{[]interface{}{"x", String().Set("a", 1).Set("b", 2)}, ErrMultidimensionalBind},
		{[]interface{}{"x", Int(1, []int{2, 3})}, ErrMultidimensionalBind},
		{[]interface{}{struct{}{}}, ErrInvalidBindValue},
		{[]interface{}{[]interface{}{map[string]int{}}}, ErrInvalidBindValue},
		{[]interface{}{"x", map[string]interface{}{"a": 1}}, ErrInvalidBindValue},
		{map[string]interface{}{"1a": 1}, ErrInvalidBindShape},
		{struct{}{}, ErrInvalidBindShape},
		{Int(1).Set("a", 2), ErrMixedBindShape},
	} {
		_, err := n.normalize(c.bind)
		assert.ErrorIs(t, err, c.err, "%#v", c.bind)
	}

	// Structural errors share a parent
	_, err := n.normalize([]interface{}{[]int{}})
	assert.ErrorIs(t, err, ErrInvalidBindShape)
}
