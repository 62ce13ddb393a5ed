// Package pagination resolves the 1-based page requested through the "page"
// query parameter against a known total and page size.
package pagination

import (
	"strconv"
	"strings"
)

const DefaultPerPage = 10

// Page is one page of a listing plus the metadata templates need to render
// the paginator.
type Page[T any] struct {
	Items      []T
	Number     int
	PerPage    int
	TotalPages int
	Total      int64
}

// Resolve clamps the raw page parameter into the valid range. Anything that
// is not an integer, or is below 1, resolves to the first page; anything past
// the end resolves to the last page. An empty listing still has one page.
func Resolve[T any](total int64, perPage int, raw string) Page[T] {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages == 0 {
		totalPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil || number < 1:
		number = 1
	case number > totalPages:
		number = totalPages
	}

	return Page[T]{
		Number:     number,
		PerPage:    perPage,
		TotalPages: totalPages,
		Total:      total,
	}
}

// Offset is the number of rows preceding this page.
func (p Page[T]) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page[T]) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

func (p Page[T]) PreviousNumber() int {
	if p.HasPrevious() {
		return p.Number - 1
	}
	return p.Number
}
