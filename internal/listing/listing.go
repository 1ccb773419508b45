// Package listing implements the list-view pipeline shared by every collection
// endpoint: a single-pass search/filter predicate followed by page slicing.
package listing

import (
	"strings"
)

const (
	// DefaultPageSize is used when a query does not carry a page size.
	DefaultPageSize = 5
	// MaxPageSize caps client supplied page sizes.
	MaxPageSize = 100

	// FilterAll disables a filter, same as leaving it empty.
	FilterAll = "all"
)

// Query carries the list state coming from the client.
type Query struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Spec describes how an entity exposes its searchable text and filterable values.
type Spec[T any] struct {
	SearchFields func(T) []string
	FilterFields map[string]func(T) string
}

// Limits bounds the page size a query may request.
type Limits struct {
	Default int
	Max     int
}

// Normalize fills in the page defaults and caps the page size.
func (l Limits) Normalize(q Query) Query {
	def := l.Default
	if def <= 0 {
		def = DefaultPageSize
	}
	max := l.Max
	if max <= 0 {
		max = MaxPageSize
	}
	if q.PageSize <= 0 {
		q.PageSize = def
	}
	if q.PageSize > max {
		q.PageSize = max
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// Matches reports whether item satisfies the search term and every active filter.
// Unknown filter keys are ignored.
func Matches[T any](spec Spec[T], q Query, item T) bool {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term != "" && spec.SearchFields != nil {
		found := false
		for _, field := range spec.SearchFields(item) {
			if strings.Contains(strings.ToLower(field), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for key, want := range q.Filters {
		if want == "" || want == FilterAll {
			continue
		}
		get, ok := spec.FilterFields[key]
		if !ok {
			continue
		}
		if get(item) != want {
			return false
		}
	}
	return true
}

// Filter returns the items matching q, preserving order.
func Filter[T any](spec Spec[T], q Query, items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(spec, q, item) {
			out = append(out, item)
		}
	}
	return out
}

// Apply runs the whole pipeline: filter, then paginate.
func Apply[T any](spec Spec[T], q Query, items []T) Page[T] {
	return Paginate(Filter(spec, q, items), q.Page, q.PageSize)
}
