package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParams(t *testing.T) {
	limits := DefaultLimits()

	tests := []struct {
		name       string
		page, size int
		want       Params
	}{
		{"defaults", 0, 0, Params{Page: 1, Size: 28}},
		{"override", 2, 10, Params{Page: 2, Size: 10}},
		{"capped", 1, 500, Params{Page: 1, Size: 100}},
		{"negative", -3, -1, Params{Page: 1, Size: 28}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewParams(tt.page, tt.size, limits))
		})
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, Params{Page: 3, Size: 5}, Parse("3", "5", DefaultLimits()))
	assert.Equal(t, Params{Page: 1, Size: 28}, Parse("abc", "", DefaultLimits()))
	assert.Equal(t, 10, Parse("3", "5", DefaultLimits()).Offset())
}

func TestNewPage_ThirtyItemsTwoPages(t *testing.T) {
	p1 := NewPage(make([]int, 28), 30, NewParams(1, 28, DefaultLimits()))
	assert.Equal(t, int64(30), p1.Count)
	assert.Len(t, p1.Results, 28)
	require.NotNil(t, p1.Next)
	assert.Equal(t, 2, *p1.Next)
	assert.Nil(t, p1.Previous)
	assert.Equal(t, 2, p1.TotalPages)
	assert.Equal(t, 1, p1.CurrentPage)

	p2 := NewPage(make([]int, 2), 30, NewParams(2, 28, DefaultLimits()))
	assert.Len(t, p2.Results, 2)
	assert.Nil(t, p2.Next)
	require.NotNil(t, p2.Previous)
	assert.Equal(t, 1, *p2.Previous)
	assert.Equal(t, 2, p2.CurrentPage)
}

func TestEmpty(t *testing.T) {
	page := Empty[string](NewParams(1, 0, DefaultLimits()))
	assert.Equal(t, int64(0), page.Count)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
	assert.Equal(t, 1, page.TotalPages)
}

func TestNewPage_PastEnd(t *testing.T) {
	page := NewPage[int](nil, 3, NewParams(5, 2, DefaultLimits()))
	assert.Empty(t, page.Results)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, 2, *page.Previous)
}

func TestMap(t *testing.T) {
	page := NewPage([]int{1, 2}, 2, NewParams(1, 10, DefaultLimits()))
	mapped := Map(page, func(i int) string { return string(rune('a' + i - 1)) })
	assert.Equal(t, []string{"a", "b"}, mapped.Results)
	assert.Equal(t, page.Count, mapped.Count)
}
