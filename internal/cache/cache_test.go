package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheable(t *testing.T) {
	assert.True(t, Cacheable(1, ""))
	assert.False(t, Cacheable(2, ""), "only page 1 is cached")
	assert.False(t, Cacheable(1, "amit"), "free-text queries bypass the cache")
	assert.False(t, Cacheable(0, ""), "page 0 is not a valid cached page")
}

func TestSearchCacheKey(t *testing.T) {
	c := &SearchCache{prefix: "search:resumes:"}

	t.Run("empty filters normalize to all", func(t *testing.T) {
		assert.Equal(t, "search:resumes:limit=12:exp=all:prof=all", c.Key(12, "", ""))
	})

	t.Run("every filter participates in the key", func(t *testing.T) {
		a := c.Key(12, "medium", "chef")
		assert.Equal(t, "search:resumes:limit=12:exp=medium:prof=chef", a)

		assert.NotEqual(t, a, c.Key(24, "medium", "chef"))
		assert.NotEqual(t, a, c.Key(12, "high", "chef"))
		assert.NotEqual(t, a, c.Key(12, "medium", "baker"))
	})

	t.Run("explicit all equals empty", func(t *testing.T) {
		assert.Equal(t, c.Key(12, "all", "all"), c.Key(12, "", ""))
	})
}
