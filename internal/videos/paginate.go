package videos

import "github.com/samber/lo"

// Paginate returns the page-th slice of perPage items. Pages past the end of
// items yield an empty slice. page and perPage below 1 are treated as 1.
func Paginate[T any](items []T, page, perPage int) []T {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}

	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// TotalPages is ceil(total/perPage), or 0 when there is nothing to show.
func TotalPages(total, perPage int) int {
	if total <= 0 {
		return 0
	}
	if perPage < 1 {
		perPage = 1
	}
	return (total + perPage - 1) / perPage
}

// FilterBySize keeps the records whose height falls inside size.
func FilterBySize(records []VideoRecord, size Size) []VideoRecord {
	if size == SizeAny {
		return records
	}
	return lo.Filter(records, func(r VideoRecord, _ int) bool {
		return size.Contains(r.Height)
	})
}
