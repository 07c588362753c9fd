package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"redsys/internal/shared/constants"
)

// Pagination holds normalized pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// NormalizePagination applies defaults to values below 1 and caps the page
// size at MaxPageSize.
func NormalizePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// ParsePagination reads page and page_size from the query string.
// Malformed values fall back to the defaults.
func ParsePagination(c *gin.Context) Pagination {
	return NormalizePagination(
		parseQueryInt(c, "page"),
		parseQueryInt(c, "page_size"),
	)
}

func parseQueryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// Offset is the number of rows to skip for this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages is at least 1, even for an empty result.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
