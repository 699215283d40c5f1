package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"/", 0, defaultPageSize},
		{"/?skip=40&limit=10", 40, 10},
		{"/?skip=-5", 0, defaultPageSize},
		{"/?limit=0", 0, defaultPageSize},
		{"/?limit=5000", 0, maxPageSize},
		{"/?skip=abc&limit=abc", 0, defaultPageSize},
	}
	for _, tc := range cases {
		skip, limit := pageParams(testContext(tc.query))
		assert.Equal(t, tc.wantSkip, skip, tc.query)
		assert.Equal(t, tc.wantLimit, limit, tc.query)
	}
}

func TestIDParam(t *testing.T) {
	c := testContext("/")
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, err := idParam(c)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	c.SetParamValues("nope")
	_, err = idParam(c)
	assert.Error(t, err)

	c.SetParamValues("-1")
	_, err = idParam(c)
	assert.Error(t, err)
}
