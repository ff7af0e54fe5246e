package dashboard

import "fmt"

// PageSize is the number of questions per dashboard page.
const PageSize = 10

// Window is one page of a filtered list.
type Window struct {
	// Page is the 1-based page number after clamping.
	Page int `json:"page"`

	// Pages is the page count, at least 1 even for an empty list.
	Pages int `json:"pages"`

	// Start and End bound the page as a half-open index range.
	Start int `json:"start"`
	End   int `json:"end"`

	// Total is the number of items being paged.
	Total int `json:"total"`
}

// Paginate computes the window for page of total items. Pages outside
// [1, Pages] are clamped.
func Paginate(total, page, size int) Window {
	if size <= 0 {
		size = PageSize
	}
	pages := max(1, (total+size-1)/size)
	page = min(max(page, 1), pages)
	start := (page - 1) * size
	return Window{
		Page:  page,
		Pages: pages,
		Start: start,
		End:   min(start+size, total),
		Total: total,
	}
}

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev() bool { return w.Page > 1 }

// HasNext reports whether a next page exists.
func (w Window) HasNext() bool { return w.Page < w.Pages }

// Label renders the range line, e.g. "Showing 11-20 of 23".
func (w Window) Label() string {
	if w.Total == 0 {
		return "Showing 0-0 of 0"
	}
	return fmt.Sprintf("Showing %d-%d of %d", w.Start+1, w.End, w.Total)
}

// Slice returns the window's items.
func Slice[T any](items []T, w Window) []T {
	if w.Start >= len(items) {
		return items[:0]
	}
	return items[w.Start:min(w.End, len(items))]
}
