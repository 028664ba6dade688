package models

// Pagination carries offset-pagination metadata for listing pages.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination clamps page to at least 1 and computes the page count.
// A page beyond the last one stays as requested and simply yields an
// empty item set.
func NewPagination(page, perPage, total int) Pagination {
	if page <= 0 {
		page = 1
	}

	totalPages := (total + perPage - 1) / perPage

	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// LastPage resolves the "jump to last page" sentinel: ceil(total/perPage),
// or page 1 when there are no items yet.
func LastPage(total, perPage int) int {
	if total == 0 {
		return 1
	}

	return (total-1)/perPage + 1
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p Pagination) PrevPage() int {
	return p.Page - 1
}

func (p Pagination) NextPage() int {
	return p.Page + 1
}
