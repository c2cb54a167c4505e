package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func pageParamsFor(t *testing.T, query string) PageParams {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/listings?"+query, nil)
	rec := httptest.NewRecorder()
	return GetPageParams(e.NewContext(req, rec))
}

func TestGetPageParams(t *testing.T) {
	params := pageParamsFor(t, "limit=10&cursor=abc")
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, "abc", params.Cursor)
}

func TestGetPageParamsClampsLimit(t *testing.T) {
	assert.Equal(t, 20, pageParamsFor(t, "").Limit)
	assert.Equal(t, 20, pageParamsFor(t, "limit=0").Limit)
	assert.Equal(t, 20, pageParamsFor(t, "limit=-3").Limit)
	assert.Equal(t, 20, pageParamsFor(t, "limit=500").Limit)
	assert.Equal(t, 50, pageParamsFor(t, "limit=50").Limit)
}
