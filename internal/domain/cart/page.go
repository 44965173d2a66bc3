package cart

// Page is one windowed view over the line item list.
type Page struct {
	// Items is the slice of lines visible on this page, in cart order.
	Items []LineItem

	// StartIndex and EndIndex are 0-based bounds of the window,
	// EndIndex exclusive.
	StartIndex int
	EndIndex   int

	// PageCount is max(1, ceil(len(items)/pageSize)).
	PageCount int
}

// PageCount returns max(1, ceil(n/pageSize)).
func PageCount(n, pageSize int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate windows items to the given 1-based page. Pure and deterministic;
// it never mutates its inputs. An out-of-range page is clamped into
// [1, pageCount] before windowing.
func Paginate(items []LineItem, currentPage, pageSize int) Page {
	count := PageCount(len(items), pageSize)
	if currentPage > count {
		currentPage = count
	}
	if currentPage < 1 {
		currentPage = 1
	}

	start := (currentPage - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	window := make([]LineItem, end-start)
	copy(window, items[start:end])

	return Page{
		Items:      window,
		StartIndex: start,
		EndIndex:   end,
		PageCount:  count,
	}
}
