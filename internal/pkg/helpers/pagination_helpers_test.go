package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset uint64
		wantSize   int
	}{
		{"first page default size", 1, 10, 0, 10},
		{"second page small size", 2, 3, 3, 3},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative page clamps to first", -5, 10, 0, 10},
		{"zero limit uses default", 1, 0, 0, DefaultPageSize},
		{"oversized limit uses default", 1, 500, 0, DefaultPageSize},
		{"max limit respected", 2, MaxPageSize, 100, MaxPageSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offset, size := CalculateOffsetLimit(tc.page, tc.limit)
			assert.Equal(t, tc.wantOffset, offset)
			assert.Equal(t, tc.wantSize, size)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(25), info.TotalItems)
}

func TestNewPaginationInfo_EmptyResult(t *testing.T) {
	info := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, int64(0), info.TotalItems)
}

func TestNewPaginationInfo_PageBeyondEnd(t *testing.T) {
	info := NewPaginationInfo(15, 9, 10)
	// Current page is capped at the last real page
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 2, info.TotalPages)
}
