// Package paging slices ordered record sets into fixed-size pages.
package paging

// DefaultPageSize is the number of records shown per listing page.
const DefaultPageSize = 10

// Page is one visible window over an ordered sequence.
type Page[T any] struct {
	Visible []T
	HasMore bool
}

// Slice returns the records at positions [page*pageSize, (page+1)*pageSize),
// clipped to the sequence bounds. Pages are zero-based; callers never pass a
// negative page. A page past the end yields an empty window with no
// continuation.
func Slice[T any](items []T, page, pageSize int) Page[T] {
	start := page * pageSize
	if start >= len(items) {
		return Page[T]{}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Visible: items[start:end],
		HasMore: end < len(items),
	}
}
