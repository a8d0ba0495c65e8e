package paging

import "strings"

const (
	SortAscending  = 1
	SortDescending = -1
)

// Params carries page/sort inputs shared by list queries.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder int
}

// WithDefaults fills zero values. Page is 1-based.
func (p Params) WithDefaults(limit int, sortBy string, order int) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = limit
	}
	p.SortBy = strings.TrimSpace(p.SortBy)
	if p.SortBy == "" {
		p.SortBy = sortBy
		if p.SortOrder == 0 {
			p.SortOrder = order
		}
	}
	if p.SortOrder != SortDescending {
		p.SortOrder = SortAscending
	}
	return p
}

func (p Params) Desc() bool {
	return p.SortOrder == SortDescending
}

func (p Params) Offset() int {
	if p.Page < 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Window returns the [start, end) bounds of the page within n items.
func (p Params) Window(n int) (int, int) {
	start := p.Offset()
	if start > n {
		start = n
	}
	end := n
	if p.Limit > 0 && start+p.Limit < n {
		end = start + p.Limit
	}
	return start, end
}
