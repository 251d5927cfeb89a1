package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	t.Run("exact multiple of limit", func(t *testing.T) {
		p := NewPagination(1, 12, 24)
		assert.Equal(t, 2, p.TotalPages)
		assert.True(t, p.HasMore)
	})

	t.Run("partial last page rounds up", func(t *testing.T) {
		p := NewPagination(1, 12, 25)
		assert.Equal(t, 3, p.TotalPages)
	})

	t.Run("no more pages on the last page", func(t *testing.T) {
		p := NewPagination(3, 12, 25)
		assert.False(t, p.HasMore)
	})

	t.Run("no more pages past the end", func(t *testing.T) {
		p := NewPagination(9, 12, 25)
		assert.False(t, p.HasMore)
	})

	t.Run("empty result set", func(t *testing.T) {
		p := NewPagination(1, 12, 0)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasMore)
	})

	t.Run("single short page", func(t *testing.T) {
		p := NewPagination(1, 12, 5)
		assert.Equal(t, 1, p.TotalPages)
		assert.False(t, p.HasMore)
	})
}

func TestPaginationJSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(NewPagination(2, 12, 25))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))

	assert.Contains(t, m, "totalPages")
	assert.Contains(t, m, "hasMore")
	assert.Equal(t, float64(3), m["totalPages"])
	assert.Equal(t, true, m["hasMore"])
}
