package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageFirstOfThree(t *testing.T) {
	assert := assert.New(t)

	content := make([]int, 10)
	p := NewPage(content, 0, 10, 25)

	assert.Equal(int64(25), p.TotalElements)
	assert.Equal(3, p.TotalPages)
	assert.Equal(10, p.Size)
	assert.Equal(0, p.Number)
	assert.True(p.First)
	assert.False(p.Last)
	assert.False(p.Empty)
	assert.Equal(int64(0), p.Pageable.Offset)
	assert.True(p.Pageable.Paged)
}

func TestNewPageLastPartialPage(t *testing.T) {
	assert := assert.New(t)

	content := make([]int, 5)
	p := NewPage(content, 2, 10, 25)

	assert.Equal(3, p.TotalPages)
	assert.Equal(2, p.Number)
	assert.False(p.First)
	assert.True(p.Last)
	assert.False(p.Empty)
	assert.Equal(int64(20), p.Pageable.Offset)
}

func TestNewPageEmpty(t *testing.T) {
	assert := assert.New(t)

	p := NewPage[int](nil, 0, 20, 0)

	assert.NotNil(p.Content)
	assert.Empty(p.Content)
	assert.Equal(int64(0), p.TotalElements)
	assert.Equal(0, p.TotalPages)
	assert.True(p.First)
	assert.True(p.Last)
	assert.True(p.Empty)
}

func TestNewPageBeyondEnd(t *testing.T) {
	p := NewPage[int](nil, 5, 10, 25)

	assert.Equal(t, 5, p.Number)
	assert.True(t, p.Empty)
	assert.True(t, p.Last)
	assert.False(t, p.First)
}
