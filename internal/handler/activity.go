package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/i18n"
	"github.com/tmsiti/institute-api/internal/repository"
	"github.com/tmsiti/institute-api/internal/storage"
)

// ActivityHandler serves the activity pages: management systems and testing
// laboratories.
type ActivityHandler struct {
	Cfg          config.Config
	Systems      *repository.ManagementSystemRepo
	Laboratories *repository.LaboratoryRepo
	Store        *storage.Store
}

// GetManagementSystems returns the certification activity page.
func (h *ActivityHandler) GetManagementSystems(c echo.Context) error {
	ctx, cancel := dbTimeout(c)
	defer cancel()

	m, err := h.Systems.GetActive(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "page not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	lang := requestLang(c, h.Cfg.DefaultLang)
	return c.JSON(http.StatusOK, echo.Map{
		"id":       m.ID,
		"content":  localized(m.Content, lang, h.Cfg.Languages),
		"pdf_path": m.PdfPath,
	})
}

// UpsertManagementSystems replaces the certification activity page.
func (h *ActivityHandler) UpsertManagementSystems(c echo.Context) error {
	var req struct {
		Content i18n.Text `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Content.Validate("content", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	m := repository.ManagementSystem{Content: req.Content}
	if err := h.Systems.Upsert(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// UploadManagementSystemsPdf attaches a document to the page.
func (h *ActivityHandler) UploadManagementSystemsPdf(c echo.Context) error {
	ctx, cancel := dbTimeout(c)
	defer cancel()

	m, err := h.Systems.GetActive(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "page not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	path, ok := saveUpload(c, h.Store, "file", "management_systems", storage.KindDocument)
	if !ok {
		return nil
	}
	if err := h.Systems.SetPdf(ctx, m.ID, path); err != nil {
		_ = h.Store.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if m.PdfPath != "" {
		_ = h.Store.Remove(m.PdfPath)
	}
	return c.JSON(http.StatusOK, echo.Map{"pdf_path": path})
}

// ListLaboratories returns active laboratories in the request language.
func (h *ActivityHandler) ListLaboratories(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.Laboratories.List(ctx, skip, limit, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	type view struct {
		ID          uint64 `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		KslLink     string `json:"ksl_link,omitempty"`
	}
	views := make([]view, 0, len(items))
	for _, l := range items {
		views = append(views, view{
			ID:          l.ID,
			Name:        localized(l.Name, lang, h.Cfg.Languages),
			Description: localized(l.Description, lang, h.Cfg.Languages),
			KslLink:     l.KslLink,
		})
	}
	return c.JSON(http.StatusOK, views)
}

type laboratoryReq struct {
	Name        i18n.Text `json:"name"`
	Description i18n.Text `json:"description"`
	KslLink     string    `json:"ksl_link"`
	IsActive    *bool     `json:"is_active"`
}

// CreateLaboratory inserts a laboratory.
func (h *ActivityHandler) CreateLaboratory(c echo.Context) error {
	var req laboratoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Name.Validate("name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	l := repository.Laboratory{
		Name:        req.Name,
		Description: req.Description,
		KslLink:     strings.TrimSpace(req.KslLink),
	}
	if err := h.Laboratories.Create(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, l)
}

// UpdateLaboratory replaces a laboratory entry.
func (h *ActivityHandler) UpdateLaboratory(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req laboratoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Name.Validate("name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	l, err := h.Laboratories.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "laboratory not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	l.Name = req.Name
	l.Description = req.Description
	l.KslLink = strings.TrimSpace(req.KslLink)
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
	if err := h.Laboratories.Update(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, l)
}
