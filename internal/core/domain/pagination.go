package domain

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PaginationPolicy turns the page/limit pair of a request into a bounded
// query window. MaxLimit <= 0 disables the ceiling.
type PaginationPolicy struct {
	DefaultLimit int
	MaxLimit     int
}

func NewPaginationPolicy(defaultLimit, maxLimit int) PaginationPolicy {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}

	return PaginationPolicy{
		DefaultLimit: defaultLimit,
		MaxLimit:     maxLimit,
	}
}

type PageWindow struct {
	Page  int
	Limit int
}

// Skip saturates at math.MaxInt instead of wrapping for pages far past the end.
func (w PageWindow) Skip() int {
	if w.Page <= 1 || w.Limit <= 0 {
		return 0
	}

	if w.Page-1 > math.MaxInt/w.Limit {
		return math.MaxInt
	}

	return (w.Page - 1) * w.Limit
}

func (w PageWindow) Take() int {
	return w.Limit
}

func (p PaginationPolicy) Window(page, limit int) PageWindow {
	if page <= 0 {
		page = DefaultPage
	}

	if limit <= 0 {
		limit = p.DefaultLimit

		if limit <= 0 {
			limit = DefaultLimit
		}
	}

	if p.MaxLimit > 0 && limit > p.MaxLimit {
		limit = p.MaxLimit
	}

	return PageWindow{Page: page, Limit: limit}
}

// PageCount is ceil(total / limit).
func PageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}

	return (total + limit - 1) / limit
}
