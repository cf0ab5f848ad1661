package query

import "strconv"

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination describes one page of a list response.
type Pagination struct {
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	TotalRecords   int  `json:"totalRecords"`
	RecordsPerPage int  `json:"recordsPerPage"`
	HasNextPage    bool `json:"hasNextPage"`
	HasPrevPage    bool `json:"hasPrevPage"`
	NextPage       *int `json:"nextPage"`
	PrevPage       *int `json:"prevPage"`
}

// Paginate computes paging metadata from raw page/limit query values and a
// total row count. page defaults to 1 and limit to 10 when absent or not
// numeric; limit is capped at 100.
func Paginate(pageStr, limitStr string, totalRecords int) Pagination {
	page := parsePositive(pageStr, defaultPage)
	limit := parsePositive(limitStr, defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}

	totalPages := (totalRecords + limit - 1) / limit

	p := Pagination{
		CurrentPage:    page,
		TotalPages:     totalPages,
		TotalRecords:   totalRecords,
		RecordsPerPage: limit,
		HasNextPage:    page < totalPages,
		HasPrevPage:    page > 1,
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}

// Offset is the SQL OFFSET matching this page.
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.RecordsPerPage
}

func parsePositive(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
