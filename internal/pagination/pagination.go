// Package pagination slices ordered collections into fixed-size pages and
// reports navigation metadata. Page numbers are 1-based; anything the caller
// cannot parse falls back to page 1, and numbers past the end clamp to the
// last page instead of erroring.
package pagination

import "strconv"

// Meta describes one page of an ordered result set.
type Meta struct {
	Number     int  `json:"number"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Page is one slice of an ordered collection plus its metadata.
type Page[T any] struct {
	Items []T `json:"items"`
	Meta
}

// ParsePageNumber interprets a raw ?page= query value. Empty, non-numeric
// and non-positive values all mean page 1.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Window computes the SQL limit/offset for the requested page over a
// collection of totalItems records, clamping past-the-end page numbers to
// the last page. Repositories push the slicing into the store while the
// page semantics stay identical to Paginate.
func Window(totalItems, number, perPage int) (offset int, meta Meta) {
	meta = buildMeta(totalItems, number, perPage)
	return (meta.Number - 1) * meta.PerPage, meta
}

// Paginate slices an already ordered, already filtered collection in memory.
// An empty collection yields an empty first page without error.
func Paginate[T any](items []T, number, perPage int) Page[T] {
	meta := buildMeta(len(items), number, perPage)

	start := (meta.Number - 1) * meta.PerPage
	end := start + meta.PerPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{Items: items[start:end], Meta: meta}
}

// NewPage pairs records fetched through Window with the page metadata.
func NewPage[T any](items []T, meta Meta) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Meta: meta}
}

func buildMeta(totalItems, number, perPage int) Meta {
	if perPage < 1 {
		perPage = 1
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Meta{
		Number:     number,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}
