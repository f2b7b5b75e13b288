package models

// Pagination carries list metadata in the response envelope.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ListQuery captures common list parameters after validation.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	Order   string
}

// Offset converts page/per-page into a SQL offset.
func (q ListQuery) Offset() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// NewPagination derives the pagination block from a total row count.
func NewPagination(q ListQuery, total int) *Pagination {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	return &Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: pages}
}
