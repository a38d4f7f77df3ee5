package models

// Page is a bounded slice of a larger collection with pagination metadata.
type Page[T any] struct {
	PageNum    int `json:"page_num"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Items      []T `json:"items"`
}

// Paginate slices a fully fetched collection. An out-of-range page yields
// no items; Total and TotalPages always describe the whole collection.
// perPage must be at least 1. The offset is only computed for pages that
// exist, so any pageNum is safe.
func Paginate[T any](all []T, pageNum, perPage int) Page[T] {
	total := len(all)
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	start := total
	if pageNum >= 1 && pageNum <= totalPages {
		start = (pageNum - 1) * perPage
	}
	end := total
	if perPage < total-start {
		end = start + perPage
	}

	items := make([]T, end-start)
	copy(items, all[start:end])

	return Page[T]{
		PageNum:    pageNum,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Items:      items,
	}
}

// ApproximatePage wraps a page that was already paginated upstream, where
// the size of the full result set is unknown.
//
// Total is the number of items on this page and TotalPages is pageNum when
// the page has items, 0 otherwise. Callers can only use them to tell "more
// pages may exist" from "end of data", not to jump to a last page.
func ApproximatePage[T any](items []T, pageNum, perPage int) Page[T] {
	if len(items) == 0 {
		return EmptyPage[T](pageNum, perPage)
	}
	return Page[T]{
		PageNum:    pageNum,
		PerPage:    perPage,
		Total:      len(items),
		TotalPages: pageNum,
		Items:      items,
	}
}

// EmptyPage returns a page with no items and zero totals
func EmptyPage[T any](pageNum, perPage int) Page[T] {
	return Page[T]{
		PageNum: pageNum,
		PerPage: perPage,
		Items:   []T{},
	}
}
