package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/i18n"
	"github.com/tmsiti/institute-api/internal/repository"
	"github.com/tmsiti/institute-api/internal/storage"
)

// RegulationHandler serves the six regulatory-document catalogs: laws, urban
// norms, standards, building regulations, smeta resource norms and
// references.
type RegulationHandler struct {
	Cfg          config.Config
	Laws         *repository.LawRepo
	UrbanNorms   *repository.UrbanNormRepo
	Standards    *repository.StandardRepo
	BuildingRegs *repository.BuildingRegulationRepo
	SmetaNorms   *repository.SmetaNormRepo
	References   *repository.ReferenceRepo
	Store        *storage.Store
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// ----- laws -----

type lawView struct {
	ID            uint64    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	Name          string    `json:"name"`
	AdoptionDate  time.Time `json:"adoption_date"`
	EffectiveDate time.Time `json:"effective_date"`
	Authority     string    `json:"authority"`
	LexLink       string    `json:"lex_uz_link,omitempty"`
}

// ListLaws returns active laws for readers, newest first.
func (h *RegulationHandler) ListLaws(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.Laws.List(ctx, skip, limit, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views := make([]lawView, 0, len(items))
	for _, l := range items {
		views = append(views, lawView{
			ID:            l.ID,
			OrderNumber:   l.OrderNumber,
			Name:          localized(l.Name, lang, h.Cfg.Languages),
			AdoptionDate:  l.AdoptionDate,
			EffectiveDate: l.EffectiveDate,
			Authority:     localized(l.Authority, lang, h.Cfg.Languages),
			LexLink:       l.LexLink,
		})
	}
	return c.JSON(http.StatusOK, views)
}

type lawReq struct {
	OrderNumber   string    `json:"order_number"`
	Name          i18n.Text `json:"name"`
	AdoptionDate  string    `json:"adoption_date"`
	EffectiveDate string    `json:"effective_date"`
	Authority     i18n.Text `json:"authority"`
	LexLink       string    `json:"lex_uz_link"`
	IsActive      *bool     `json:"is_active"`
}

func (h *RegulationHandler) bindLaw(c echo.Context, l *repository.Law) (bool, error) {
	var req lawReq
	if err := c.Bind(&req); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.OrderNumber) == "" {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "order_number required"})
	}
	if err := i18n.ValidateAll(h.Cfg.Languages, map[string]i18n.Text{
		"name":      req.Name,
		"authority": req.Authority,
	}); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	adopted, err := parseDate(req.AdoptionDate)
	if err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "adoption_date must be YYYY-MM-DD"})
	}
	effective, err := parseDate(req.EffectiveDate)
	if err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "effective_date must be YYYY-MM-DD"})
	}

	l.OrderNumber = strings.TrimSpace(req.OrderNumber)
	l.Name = req.Name
	l.AdoptionDate = adopted
	l.EffectiveDate = effective
	l.Authority = req.Authority
	l.LexLink = strings.TrimSpace(req.LexLink)
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
	return true, nil
}

// CreateLaw inserts a law record.
func (h *RegulationHandler) CreateLaw(c echo.Context) error {
	var l repository.Law
	l.IsActive = true
	if ok, err := h.bindLaw(c, &l); !ok {
		return err
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()
	if err := h.Laws.Create(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, l)
}

// UpdateLaw replaces a law record.
func (h *RegulationHandler) UpdateLaw(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	l, err := h.Laws.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "law not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if ok, err := h.bindLaw(c, &l); !ok {
		return err
	}
	if err := h.Laws.Update(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, l)
}

// DeleteLaw removes a law record.
func (h *RegulationHandler) DeleteLaw(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()
	if err := h.Laws.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "law not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- urban norms -----

// ListUrbanNorms returns active urban norms for readers.
func (h *RegulationHandler) ListUrbanNorms(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.UrbanNorms.List(ctx, skip, limit, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	type view struct {
		ID           uint64 `json:"id"`
		DocumentCode string `json:"document_code"`
		Name         string `json:"name"`
		LexLink      string `json:"lex_uz_link,omitempty"`
	}
	views := make([]view, 0, len(items))
	for _, u := range items {
		views = append(views, view{
			ID:           u.ID,
			DocumentCode: u.DocumentCode,
			Name:         localized(u.Name, lang, h.Cfg.Languages),
			LexLink:      u.LexLink,
		})
	}
	return c.JSON(http.StatusOK, views)
}

type urbanNormReq struct {
	DocumentCode string    `json:"document_code"`
	Name         i18n.Text `json:"name"`
	LexLink      string    `json:"lex_uz_link"`
}

// CreateUrbanNorm inserts an urban norm.  Document codes are unique.
func (h *RegulationHandler) CreateUrbanNorm(c echo.Context) error {
	var req urbanNormReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.DocumentCode) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_code required"})
	}
	if err := req.Name.Validate("name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	u := repository.UrbanNorm{
		DocumentCode: strings.TrimSpace(req.DocumentCode),
		Name:         req.Name,
		LexLink:      strings.TrimSpace(req.LexLink),
	}
	if err := h.UrbanNorms.Create(ctx, &u); err != nil {
		if err == repository.ErrCodeExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "document code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, u)
}

// UpdateUrbanNorm replaces an urban norm.
func (h *RegulationHandler) UpdateUrbanNorm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		urbanNormReq
		IsActive *bool `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.DocumentCode) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_code required"})
	}
	if err := req.Name.Validate("name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	u, err := h.UrbanNorms.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "urban norm not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	u.DocumentCode = strings.TrimSpace(req.DocumentCode)
	u.Name = req.Name
	u.LexLink = strings.TrimSpace(req.LexLink)
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if err := h.UrbanNorms.Update(ctx, &u); err != nil {
		if err == repository.ErrCodeExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "document code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, u)
}

// DeleteUrbanNorm removes an urban norm.
func (h *RegulationHandler) DeleteUrbanNorm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()
	if err := h.UrbanNorms.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "urban norm not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- standards -----

// ListStandards returns active standards for readers.
func (h *RegulationHandler) ListStandards(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.Standards.List(ctx, skip, limit, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	type view struct {
		ID      uint64 `json:"id"`
		Name    string `json:"name"`
		PdfPath string `json:"pdf_path,omitempty"`
	}
	views := make([]view, 0, len(items))
	for _, s := range items {
		views = append(views, view{ID: s.ID, Name: localized(s.Name, lang, h.Cfg.Languages), PdfPath: s.PdfPath})
	}
	return c.JSON(http.StatusOK, views)
}

// CreateStandard inserts a standard.
func (h *RegulationHandler) CreateStandard(c echo.Context) error {
	var req struct {
		Name i18n.Text `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Name.Validate("name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	s := repository.Standard{Name: req.Name}
	if err := h.Standards.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateStandard replaces a standard's name.
func (h *RegulationHandler) UpdateStandard(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Name     i18n.Text `json:"name"`
		IsActive *bool     `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Name.Validate("name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	s, err := h.Standards.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "standard not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	s.Name = req.Name
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if err := h.Standards.Update(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteStandard removes a standard and its stored document.
func (h *RegulationHandler) DeleteStandard(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	s, err := h.Standards.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "standard not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Standards.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if s.PdfPath != "" {
		_ = h.Store.Remove(s.PdfPath)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadStandardPdf attaches a document to a standard.
func (h *RegulationHandler) UploadStandardPdf(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	s, err := h.Standards.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "standard not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	path, ok := saveUpload(c, h.Store, "file", "standards", storage.KindDocument)
	if !ok {
		return nil
	}
	if err := h.Standards.SetPdf(ctx, id, path); err != nil {
		_ = h.Store.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if s.PdfPath != "" {
		_ = h.Store.Remove(s.PdfPath)
	}
	return c.JSON(http.StatusOK, echo.Map{"pdf_path": path})
}

// ----- building regulations -----

// ListBuildingRegulations returns active building regulations for readers.
func (h *RegulationHandler) ListBuildingRegulations(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.BuildingRegs.List(ctx, skip, limit, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	type view struct {
		ID             uint64 `json:"id"`
		DocumentNumber string `json:"document_number"`
		Designation    string `json:"designation"`
		Name           string `json:"name"`
		PdfPath        string `json:"pdf_path,omitempty"`
	}
	views := make([]view, 0, len(items))
	for _, b := range items {
		views = append(views, view{
			ID:             b.ID,
			DocumentNumber: b.DocumentNumber,
			Designation:    b.Designation,
			Name:           localized(b.Name, lang, h.Cfg.Languages),
			PdfPath:        b.PdfPath,
		})
	}
	return c.JSON(http.StatusOK, views)
}

// CreateBuildingRegulation inserts a building regulation.
func (h *RegulationHandler) CreateBuildingRegulation(c echo.Context) error {
	var req struct {
		DocumentNumber string    `json:"document_number"`
		Designation    string    `json:"designation"`
		Name           i18n.Text `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.DocumentNumber) == "" || strings.TrimSpace(req.Designation) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_number/designation required"})
	}
	if err := req.Name.Validate("name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	b := repository.BuildingRegulation{
		DocumentNumber: strings.TrimSpace(req.DocumentNumber),
		Designation:    strings.TrimSpace(req.Designation),
		Name:           req.Name,
	}
	if err := h.BuildingRegs.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, b)
}

// UpdateBuildingRegulation replaces a building regulation.
func (h *RegulationHandler) UpdateBuildingRegulation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		DocumentNumber string    `json:"document_number"`
		Designation    string    `json:"designation"`
		Name           i18n.Text `json:"name"`
		IsActive       *bool     `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.DocumentNumber) == "" || strings.TrimSpace(req.Designation) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_number/designation required"})
	}
	if err := req.Name.Validate("name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	b, err := h.BuildingRegs.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "building regulation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	b.DocumentNumber = strings.TrimSpace(req.DocumentNumber)
	b.Designation = strings.TrimSpace(req.Designation)
	b.Name = req.Name
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := h.BuildingRegs.Update(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, b)
}

// DeleteBuildingRegulation removes a building regulation and its document.
func (h *RegulationHandler) DeleteBuildingRegulation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	b, err := h.BuildingRegs.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "building regulation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.BuildingRegs.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if b.PdfPath != "" {
		_ = h.Store.Remove(b.PdfPath)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadBuildingRegulationPdf attaches a document to a building regulation.
func (h *RegulationHandler) UploadBuildingRegulationPdf(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	b, err := h.BuildingRegs.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "building regulation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	path, ok := saveUpload(c, h.Store, "file", "building_regulations", storage.KindDocument)
	if !ok {
		return nil
	}
	if err := h.BuildingRegs.SetPdf(ctx, id, path); err != nil {
		_ = h.Store.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if b.PdfPath != "" {
		_ = h.Store.Remove(b.PdfPath)
	}
	return c.JSON(http.StatusOK, echo.Map{"pdf_path": path})
}

// ----- smeta resource norms -----

// ListSmetaNorms returns active smeta resource norms for readers.
func (h *RegulationHandler) ListSmetaNorms(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.SmetaNorms.List(ctx, skip, limit, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	type view struct {
		ID             uint64 `json:"id"`
		DocumentNumber string `json:"document_number"`
		ShnqNumber     string `json:"shnq_number"`
		ShnqName       string `json:"shnq_name"`
	}
	views := make([]view, 0, len(items))
	for _, s := range items {
		views = append(views, view{
			ID:             s.ID,
			DocumentNumber: s.DocumentNumber,
			ShnqNumber:     s.ShnqNumber,
			ShnqName:       localized(s.ShnqName, lang, h.Cfg.Languages),
		})
	}
	return c.JSON(http.StatusOK, views)
}

// CreateSmetaNorm inserts a smeta resource norm.
func (h *RegulationHandler) CreateSmetaNorm(c echo.Context) error {
	var req struct {
		DocumentNumber string    `json:"document_number"`
		ShnqNumber     string    `json:"shnq_number"`
		ShnqName       i18n.Text `json:"shnq_name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.DocumentNumber) == "" || strings.TrimSpace(req.ShnqNumber) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_number/shnq_number required"})
	}
	if err := req.ShnqName.Validate("shnq_name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	s := repository.SmetaResourceNorm{
		DocumentNumber: strings.TrimSpace(req.DocumentNumber),
		ShnqNumber:     strings.TrimSpace(req.ShnqNumber),
		ShnqName:       req.ShnqName,
	}
	if err := h.SmetaNorms.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateSmetaNorm replaces a smeta resource norm.
func (h *RegulationHandler) UpdateSmetaNorm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		DocumentNumber string    `json:"document_number"`
		ShnqNumber     string    `json:"shnq_number"`
		ShnqName       i18n.Text `json:"shnq_name"`
		IsActive       *bool     `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.DocumentNumber) == "" || strings.TrimSpace(req.ShnqNumber) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_number/shnq_number required"})
	}
	if err := req.ShnqName.Validate("shnq_name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	s, err := h.SmetaNorms.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "smeta norm not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	s.DocumentNumber = strings.TrimSpace(req.DocumentNumber)
	s.ShnqNumber = strings.TrimSpace(req.ShnqNumber)
	s.ShnqName = req.ShnqName
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if err := h.SmetaNorms.Update(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteSmetaNorm removes a smeta resource norm.
func (h *RegulationHandler) DeleteSmetaNorm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()
	if err := h.SmetaNorms.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "smeta norm not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- references -----

// ListReferences returns active references for readers.
func (h *RegulationHandler) ListReferences(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.References.List(ctx, skip, limit, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	type view struct {
		ID              uint64 `json:"id"`
		ReferenceNumber string `json:"reference_number"`
		Name            string `json:"name"`
		PdfPath         string `json:"pdf_path,omitempty"`
	}
	views := make([]view, 0, len(items))
	for _, f := range items {
		views = append(views, view{
			ID:              f.ID,
			ReferenceNumber: f.ReferenceNumber,
			Name:            localized(f.Name, lang, h.Cfg.Languages),
			PdfPath:         f.PdfPath,
		})
	}
	return c.JSON(http.StatusOK, views)
}

// CreateReference inserts a reference document record.
func (h *RegulationHandler) CreateReference(c echo.Context) error {
	var req struct {
		ReferenceNumber string    `json:"reference_number"`
		Name            i18n.Text `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.ReferenceNumber) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reference_number required"})
	}
	if err := req.Name.Validate("name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	f := repository.Reference{
		ReferenceNumber: strings.TrimSpace(req.ReferenceNumber),
		Name:            req.Name,
	}
	if err := h.References.Create(ctx, &f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, f)
}

// UpdateReference replaces a reference record.
func (h *RegulationHandler) UpdateReference(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		ReferenceNumber string    `json:"reference_number"`
		Name            i18n.Text `json:"name"`
		IsActive        *bool     `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.ReferenceNumber) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reference_number required"})
	}
	if err := req.Name.Validate("name", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	f, err := h.References.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reference not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	f.ReferenceNumber = strings.TrimSpace(req.ReferenceNumber)
	f.Name = req.Name
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if err := h.References.Update(ctx, &f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, f)
}

// DeleteReference removes a reference and its stored document.
func (h *RegulationHandler) DeleteReference(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	f, err := h.References.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reference not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.References.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if f.PdfPath != "" {
		_ = h.Store.Remove(f.PdfPath)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadReferencePdf attaches a document to a reference.
func (h *RegulationHandler) UploadReferencePdf(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	f, err := h.References.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reference not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	path, ok := saveUpload(c, h.Store, "file", "references", storage.KindDocument)
	if !ok {
		return nil
	}
	if err := h.References.SetPdf(ctx, id, path); err != nil {
		_ = h.Store.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if f.PdfPath != "" {
		_ = h.Store.Remove(f.PdfPath)
	}
	return c.JSON(http.StatusOK, echo.Map{"pdf_path": path})
}
