package sqlmarkup

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of tokenized templates kept by a Compiler.
const DefaultCacheSize = 256

// tokenCache keeps tokenized templates, label fragments included.
type tokenCache struct {
	lru *lru.Cache[string, []token]
}

func newTokenCache(size int) *tokenCache {
	if size < 0 {
		return nil
	}
	if size == 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, []token](size)
	if err != nil {
		return nil
	}
	return &tokenCache{lru: c}
}

// tokens returns markup tokens of a template, tokenizing it on a cache miss.
func (c *tokenCache) tokens(template string) []token {
	if c == nil {
		return tokenize(template, maskQuotes(template))
	}
	if t, ok := c.lru.Get(template); ok {
		return t
	}
	t := tokenize(template, maskQuotes(template))
	c.lru.Add(template, t)
	return t
}

func (c *tokenCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

/*
ClearCache clears the template cache.

In most cases you don't need to care about it. It's there to
let caller free memory when a caller compiles zillions of unique
templates.
*/
func (c *Compiler) ClearCache() {
	if c.cache != nil {
		c.cache.lru.Purge()
	}
}
