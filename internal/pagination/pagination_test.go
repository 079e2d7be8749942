package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"1", 1},
		{"42", 42},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePageNumber(tt.raw), "raw=%q", tt.raw)
	}
}

func TestPaginateTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		perPage    int
		wantPages  int
		wantLast   int // items on the last page
	}{
		{"even split", 20, 10, 2, 10},
		{"remainder", 15, 10, 2, 5},
		{"single partial page", 3, 10, 1, 3},
		{"empty", 0, 10, 1, 0},
		{"page size one", 5, 1, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.totalItems)
			for i := range items {
				items[i] = i
			}

			page := Paginate(items, 1, tt.perPage)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.totalItems, page.TotalItems)

			last := Paginate(items, tt.wantPages, tt.perPage)
			assert.Len(t, last.Items, tt.wantLast)
			assert.False(t, last.HasNext)
		})
	}
}

func TestPaginateSecondPageOfFifteen(t *testing.T) {
	items := make([]int, 15)
	for i := range items {
		items[i] = i
	}

	page := Paginate(items, 2, 10)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
	assert.Equal(t, 10, page.Items[0])
}

func TestPaginateClampsPastTheEnd(t *testing.T) {
	items := []string{"a", "b", "c"}

	page := Paginate(items, 99, 2)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, []string{"c"}, page.Items)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate([]string{}, 7, 10)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestWindowMatchesPaginate(t *testing.T) {
	items := make([]int, 27)
	for i := range items {
		items[i] = i
	}

	for number := 1; number <= 4; number++ {
		offset, meta := Window(len(items), number, 10)
		inMem := Paginate(items, number, 10)

		assert.Equal(t, inMem.Meta, meta)
		assert.Equal(t, inMem.Items[0], items[offset])
	}

	// Past-the-end window clamps to the last page.
	offset, meta := Window(27, 12, 10)
	assert.Equal(t, 3, meta.Number)
	assert.Equal(t, 20, offset)
}
