package models

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest carries the page/limit query parameters of a List call
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request to sane bounds: page >= 1 and
// 1 <= limit <= MaxLimit. Missing or non-positive values fall back to
// the defaults. Out-of-range pages are left as is, a too large page
// simply produces an empty result.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the envelope returned by every List operation
type Page[T any] struct {
	Items       []T   `json:"items"`
	TotalItems  int64 `json:"total_items"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Limit       int   `json:"limit"`
}

// NewPage assembles the envelope. TotalPages is ceil(total/limit) and
// zero when the collection is empty.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}

	return Page[T]{
		Items:       items,
		TotalItems:  total,
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		Limit:       req.Limit,
	}
}
