package models

import "math"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage keeps (Page-1)*Limit within int.
	MaxPage = math.MaxInt / MaxPageLimit
)

type PageRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize fills defaults, clamps Page to [1, MaxPage] and Limit to
// [1, MaxPageLimit].
func (p PageRequest) Normalize() PageRequest {
	switch {
	case p.Page < 1:
		p.Page = 1
	case p.Page > MaxPage:
		p.Page = MaxPage
	}
	switch {
	case p.Limit == 0:
		p.Limit = DefaultPageLimit
	case p.Limit < 1:
		p.Limit = 1
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPage builds the paginated envelope. req must already be normalized.
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if total > 0 {
		pages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:  req.Page,
			Limit: req.Limit,
			Total: total,
			Pages: pages,
		},
	}
}
