// Package listing implements the in-memory search and pagination used
// by the admin and dashboard list views: filtering is recomputed from
// the full fetched list, pagination operates on the filtered result.
package listing

// DefaultPageSize matches the admin product table.
const DefaultPageSize = 5

// Filter returns the elements matching the predicate. The source slice
// is never modified.
func Filter[T any](src []T, match func(T) bool) []T {
	out := make([]T, 0, len(src))
	for _, v := range src {
		if match(v) {
			out = append(out, v)
		}
	}
	return out
}

// PageCount is ceil(n / size). Zero items means zero pages.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Page returns the 1-based page of the given size. Pages below 1 clamp
// to the first page; pages past the end come back empty. A size of 0
// or less disables pagination and returns the whole list.
func Page[T any](src []T, page, size int) []T {
	if size <= 0 {
		return src
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(src) {
		return []T{}
	}
	end := start + size
	if end > len(src) {
		end = len(src)
	}
	return src[start:end]
}
