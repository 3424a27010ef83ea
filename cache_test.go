package sqlmarkup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCache(t *testing.T) {
	c := newTokenCache(2)
	require.NotNil(t, c)

	tokens := c.tokens("SELECT ?")
	require.Len(t, tokens, 1)
	assert.Equal(t, tokens, c.tokens("SELECT ?"))
	assert.Equal(t, 1, c.len())

	c.tokens("SELECT :a")
	c.tokens("SELECT {{b}}")
	assert.Equal(t, 2, c.len())
}

func TestTokenCacheDisabled(t *testing.T) {
	c := New(WithCacheSize(-1))
	assert.Nil(t, c.cache)
	assert.Equal(t, 0, c.cache.len())

	sql, _, err := c.Compile("SELECT ?", []interface{}{1})
	require.NoError(t, err)
	assert.Equal(t, "SELECT :__1__", sql)
	c.ClearCache()
}

func TestClearCache(t *testing.T) {
	c := New()
	require.NoError(t, c.Enable("b"))
	_, _, err := c.Compile("SELECT 1 {{b: AND 2}}", nil)
	require.NoError(t, err)
	// Label fragments are cached along with templates
	assert.Equal(t, 2, c.cache.len())

	c.ClearCache()
	assert.Equal(t, 0, c.cache.len())
}
