package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 35)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, int64(35), p.Total)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)

	first := NewPagination(1, 10, 35)
	assert.False(t, first.HasPrevPage)
	assert.True(t, first.HasNextPage)

	last := NewPagination(4, 10, 35)
	assert.True(t, last.HasPrevPage)
	assert.False(t, last.HasNextPage)

	empty := NewPagination(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)

	exact := NewPagination(1, 10, 30)
	assert.Equal(t, 3, exact.TotalPages)
}

func TestClampPage(t *testing.T) {
	page, limit := ClampPage(0, 0, 12, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 12, limit)

	page, limit = ClampPage(-3, 500, 12, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = ClampPage(3, 25, 12, 100)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}
