package utils

import "math"

// DefaultPageSize is used when no positive page size is given.
const DefaultPageSize = 20

// Pagination holds pagination parameters.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination applies sane defaults to page and limit. An offset that
// would overflow int saturates at math.MaxInt, which lies past any total.
func ParsePagination(page, limit int) Pagination {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// Bounds returns the half-open index range of the page within total items.
// Both ends always lie in [0, total].
func (p Pagination) Bounds(total int) (start, end int) {
	total = max(total, 0)
	start = min(max(p.Offset, 0), total)
	end = start + min(max(p.Limit, 0), total-start)
	return start, end
}

// Pages returns how many pages total items span.
func (p Pagination) Pages(total int) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return (total-1)/p.Limit + 1
}
