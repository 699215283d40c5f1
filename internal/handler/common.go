package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/i18n"
	"github.com/tmsiti/institute-api/internal/middleware"
	"github.com/tmsiti/institute-api/internal/storage"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageParams reads skip/limit pagination from the query string and clamps
// them to sane bounds.
func pageParams(c echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return skip, limit
}

// idParam parses the :id path segment.
func idParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// dbTimeout bounds database calls made on behalf of a request.
func dbTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// requestLang returns the language negotiated by the language middleware.
func requestLang(c echo.Context, def string) string {
	return middleware.Lang(c, def)
}

// localized resolves a multilingual field to the request language, falling
// back through order when the requested translation is empty.
func localized(t i18n.Text, lang string, order []string) string {
	return t.Resolve(lang, order)
}

// saveUpload stores a multipart file from the named form field and returns
// its relative path, translating storage errors to HTTP responses.  The
// returned bool reports whether an error response was already written.
func saveUpload(c echo.Context, store *storage.Store, field, folder string, kind storage.Kind) (string, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": field + " file required"})
		return "", false
	}
	path, err := store.Save(fh, folder, kind)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			_ = c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
		case errors.Is(err, storage.ErrUnsupportedExt):
			_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "file type not allowed"})
		default:
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "save file failed"})
		}
		return "", false
	}
	return path, true
}
