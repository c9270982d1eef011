package pattern

import (
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// Compile translates text and compiles it as a whole-pronunciation match.
func Compile(text string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(Anchored(text))
	if err != nil {
		return nil, &domain.InvalidPatternError{Pattern: text, Err: err}
	}
	return re, nil
}

// Compiler compiles phonetic patterns and keeps the most recently used
// results. Compiled expressions are safe for concurrent use, so a single
// Compiler can be shared by all request handlers.
type Compiler struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// NewCompiler creates a Compiler holding up to size compiled patterns.
// A size of zero disables caching.
func NewCompiler(size int) (*Compiler, error) {
	if size < 0 {
		return nil, fmt.Errorf("pattern cache size must be >= 0 (got %d)", size)
	}
	if size == 0 {
		return &Compiler{}, nil
	}
	cache, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		return nil, fmt.Errorf("create pattern cache: %w", err)
	}
	return &Compiler{cache: cache}, nil
}

// Compile returns the compiled form of text, from cache when possible.
// Invalid patterns are not cached.
func (c *Compiler) Compile(text string) (*regexp.Regexp, error) {
	if c.cache == nil {
		return Compile(text)
	}
	if re, ok := c.cache.Get(text); ok {
		return re, nil
	}
	re, err := Compile(text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, re)
	return re, nil
}

// Len reports how many compiled patterns are cached.
func (c *Compiler) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
