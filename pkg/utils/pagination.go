package utils

// Pagination describes one page of results alongside navigation flags.
type Pagination struct {
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalPages      int   `json:"totalPages"`
	TotalCount      int64 `json:"totalCount"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPagination computes the envelope for a 1-based page of pageSize items
// out of totalCount. A page beyond the last one is legal and simply yields
// hasNextPage=false; the caller's data query returns no rows for it.
func NewPagination(page, pageSize int, totalCount int64) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}
	return Pagination{
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		TotalCount:      totalCount,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
