package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// PageParams carries cursor pagination parameters from a request.
type PageParams struct {
	Limit  int
	Cursor string
}

// GetPageParams extracts limit/cursor query parameters, clamping the
// limit to a sane range.
func GetPageParams(c echo.Context) PageParams {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	if limit <= 0 || limit > 50 {
		limit = 20
	}

	return PageParams{
		Limit:  limit,
		Cursor: c.QueryParam("cursor"),
	}
}
