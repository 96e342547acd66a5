package domain

// PaginationParams holds offset-based pagination parameters for list queries.
// A zero PageSize means "no limit".
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Window applies the params to n rows and returns the [start, end) bounds.
func (p PaginationParams) Window(n int) (start, end int) {
	if p.PageSize <= 0 {
		return 0, n
	}
	start = min(p.Offset(), n)
	end = min(start+p.PageSize, n)
	return start, end
}

// SortOrder selects the creation-time ordering of list queries.
type SortOrder string

const (
	// OrderNewestFirst is the default ordering.
	OrderNewestFirst SortOrder = "newest"
	OrderOldestFirst SortOrder = "oldest"
)

// ParseSortOrder maps "", "newest", "desc" to OrderNewestFirst and "oldest", "asc" to OrderOldestFirst.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch s {
	case "", "newest", "desc":
		return OrderNewestFirst, true
	case "oldest", "asc":
		return OrderOldestFirst, true
	}
	return "", false
}
