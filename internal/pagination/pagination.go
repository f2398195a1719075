// Package pagination implements the page-number pagination contract shared by
// every list endpoint: a default page size, a caller override capped at a
// maximum, and a response envelope carrying count, neighbour pages, results,
// total pages and the current page.
package pagination

import (
	"strconv"
	"strings"
)

// Limits bounds the page size a caller may request.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits returns 28 per page with overrides capped at 100.
func DefaultLimits() Limits {
	return Limits{DefaultSize: 28, MaxSize: 100}
}

func (l Limits) normalize() Limits {
	if l.DefaultSize <= 0 {
		l.DefaultSize = 28
	}
	if l.MaxSize <= 0 {
		l.MaxSize = 100
	}
	if l.DefaultSize > l.MaxSize {
		l.DefaultSize = l.MaxSize
	}
	return l
}

// Params is a resolved page request. Page is 1-based.
type Params struct {
	Page int
	Size int
}

// NewParams clamps page and size against the limits. Non-positive values fall
// back to page 1 and the default size; sizes above the maximum are capped.
func NewParams(page, size int, limits Limits) Params {
	limits = limits.normalize()
	if page < 1 {
		page = 1
	}
	switch {
	case size <= 0:
		size = limits.DefaultSize
	case size > limits.MaxSize:
		size = limits.MaxSize
	}
	return Params{Page: page, Size: size}
}

// Parse builds Params from raw query-string values. Unparseable values are
// treated as absent.
func Parse(page, size string, limits Limits) Params {
	return NewParams(atoi(page), atoi(size), limits)
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Offset is the number of rows to skip for this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// Limit is the number of rows to fetch for this page.
func (p Params) Limit() int {
	return p.Size
}

// Page is the paginated response envelope.
type Page[T any] struct {
	Count       int64 `json:"count"`
	Next        *int  `json:"next"`
	Previous    *int  `json:"previous"`
	Results     []T   `json:"results"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
}

// NewPage assembles the envelope for items fetched with p out of total rows.
// A page beyond the last one is returned empty with its neighbours still set.
func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	if p.Size <= 0 {
		p = NewParams(p.Page, p.Size, DefaultLimits())
	}

	totalPages := int((total + int64(p.Size) - 1) / int64(p.Size))
	if totalPages < 1 {
		totalPages = 1
	}

	page := Page[T]{
		Count:       total,
		Results:     items,
		TotalPages:  totalPages,
		CurrentPage: p.Page,
	}
	if p.Page < totalPages {
		next := p.Page + 1
		page.Next = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		if prev > totalPages {
			prev = totalPages
		}
		page.Previous = &prev
	}
	return page
}

// Empty returns a page with no results and a zero count.
func Empty[T any](p Params) Page[T] {
	return NewPage[T](nil, 0, p)
}

// Map converts the results of a page, keeping the envelope.
func Map[T, U any](page Page[T], fn func(T) U) Page[U] {
	results := make([]U, len(page.Results))
	for i, item := range page.Results {
		results[i] = fn(item)
	}
	return Page[U]{
		Count:       page.Count,
		Next:        page.Next,
		Previous:    page.Previous,
		Results:     results,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
	}
}
