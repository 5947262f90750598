package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Catalog pages render as a card grid, so requests above the cap fall back to
// the default rather than being truncated silently.
const (
	defaultPageSize = 20
	maxPageSize     = 50
)

type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams reads the page and limit query parameters, substituting
// safe defaults for missing or out-of-range values.
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}
