// Package paging splits ordered slices into fixed-size pages.
package paging

import (
	"slices"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
)

// Page is one contiguous window of a larger ordered slice.
type Page[T any] struct {
	// Index is 0-based.
	Index int
	Total int
	Items []T
}

// Number returns the 1-based page number.
func (p Page[T]) Number() int { return p.Index + 1 }

// Paginated reports whether the page belongs to a multi-page set.
func (p Page[T]) Paginated() bool { return p.Total > 1 }

// PageCount returns ceil(n/size).
func PageCount(n, size int) (int, error) {
	if err := checkSize(size); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}
	return (n + size - 1) / size, nil
}

// Paginate cuts items into pages of at most size elements, preserving order.
// Every page but the last is full. Page items are copies of the input.
func Paginate[T any](items []T, size int) ([]Page[T], error) {
	total, err := PageCount(len(items), size)
	if err != nil {
		return nil, err
	}

	pages := make([]Page[T], 0, total)
	for chunk := range slices.Chunk(items, size) {
		pages = append(pages, Page[T]{
			Index: len(pages),
			Total: total,
			Items: slices.Clone(chunk),
		})
	}
	return pages, nil
}

func checkSize(size int) error {
	if size <= 0 {
		return ferrors.ConfigError("page size must be a positive integer").
			WithContext("max_files_per_page", size).
			Build()
	}
	return nil
}
