package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/i18n"
	"github.com/tmsiti/institute-api/internal/repository"
	"github.com/tmsiti/institute-api/internal/storage"
)

// InstituteHandler serves the institute pages: about, structure, leadership,
// structural divisions and vacancies.
type InstituteHandler struct {
	Cfg        config.Config
	About      *repository.AboutRepo
	Structure  *repository.StructureRepo
	Management *repository.ManagementRepo
	Divisions  *repository.DivisionRepo
	Vacancies  *repository.VacancyRepo
	Store      *storage.Store
}

// GetAbout returns the about page in the request language.
func (h *InstituteHandler) GetAbout(c echo.Context) error {
	ctx, cancel := dbTimeout(c)
	defer cancel()

	a, err := h.About.GetActive(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "about page not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	lang := requestLang(c, h.Cfg.DefaultLang)
	return c.JSON(http.StatusOK, echo.Map{
		"id":                   a.ID,
		"content":              localized(a.Content, lang, h.Cfg.Languages),
		"certificate_pdf_path": a.CertificatePdf,
	})
}

// UpsertAbout replaces the about page.  There is one row; editors do not
// accumulate versions.
func (h *InstituteHandler) UpsertAbout(c echo.Context) error {
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

	a := repository.About{Content: req.Content}
	if err := h.About.Upsert(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, a)
}

// UploadCertificate attaches the state certificate document to the about page.
func (h *InstituteHandler) UploadCertificate(c echo.Context) error {
	ctx, cancel := dbTimeout(c)
	defer cancel()

	a, err := h.About.GetActive(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "about page not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	path, ok := saveUpload(c, h.Store, "file", "certificates", storage.KindDocument)
	if !ok {
		return nil
	}
	if err := h.About.SetCertificate(ctx, a.ID, path); err != nil {
		_ = h.Store.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if a.CertificatePdf != "" {
		_ = h.Store.Remove(a.CertificatePdf)
	}
	return c.JSON(http.StatusOK, echo.Map{"certificate_pdf_path": path})
}

// GetStructure returns the structure page in the request language.
func (h *InstituteHandler) GetStructure(c echo.Context) error {
	ctx, cancel := dbTimeout(c)
	defer cancel()

	s, err := h.Structure.GetActive(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "structure page not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	lang := requestLang(c, h.Cfg.DefaultLang)
	return c.JSON(http.StatusOK, echo.Map{
		"id":      s.ID,
		"content": localized(s.Content, lang, h.Cfg.Languages),
	})
}

// UpsertStructure replaces the structure page.
func (h *InstituteHandler) UpsertStructure(c echo.Context) error {
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

	s := repository.Structure{Content: req.Content}
	if err := h.Structure.Upsert(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// ----- management -----

type personView struct {
	ID            uint64 `json:"id"`
	FullName      string `json:"full_name"`
	Position      string `json:"position"`
	Department    string `json:"department,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	ReceptionDays string `json:"reception_days,omitempty"`
	Bio           string `json:"bio,omitempty"`
	PhotoPath     string `json:"photo_path,omitempty"`
	DisplayOrder  int    `json:"display_order"`
}

// ListManagement returns the leadership list in display order.
func (h *InstituteHandler) ListManagement(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.Management.List(ctx, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views := make([]personView, 0, len(items))
	for _, m := range items {
		views = append(views, personView{
			ID:            m.ID,
			FullName:      localized(m.FullName, lang, h.Cfg.Languages),
			Position:      localized(m.Position, lang, h.Cfg.Languages),
			Phone:         m.Phone,
			Email:         m.Email,
			ReceptionDays: localized(m.ReceptionDays, lang, h.Cfg.Languages),
			Bio:           localized(m.Bio, lang, h.Cfg.Languages),
			PhotoPath:     m.PhotoPath,
			DisplayOrder:  m.DisplayOrder,
		})
	}
	return c.JSON(http.StatusOK, views)
}

type managementReq struct {
	FullName      i18n.Text `json:"full_name"`
	Position      i18n.Text `json:"position"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	ReceptionDays i18n.Text `json:"reception_days"`
	Bio           i18n.Text `json:"bio"`
	DisplayOrder  int       `json:"display_order"`
	IsActive      *bool     `json:"is_active"`
}

// CreateManagement inserts a leadership entry.
func (h *InstituteHandler) CreateManagement(c echo.Context) error {
	var req managementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := i18n.ValidateAll(h.Cfg.Languages, map[string]i18n.Text{
		"full_name":      req.FullName,
		"position":       req.Position,
		"reception_days": req.ReceptionDays,
	}); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	m := repository.Management{
		FullName:      req.FullName,
		Position:      req.Position,
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		ReceptionDays: req.ReceptionDays,
		Bio:           req.Bio,
		DisplayOrder:  req.DisplayOrder,
	}
	if err := h.Management.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// UpdateManagement replaces a leadership entry.
func (h *InstituteHandler) UpdateManagement(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req managementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := i18n.ValidateAll(h.Cfg.Languages, map[string]i18n.Text{
		"full_name":      req.FullName,
		"position":       req.Position,
		"reception_days": req.ReceptionDays,
	}); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	m, err := h.Management.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	m.FullName = req.FullName
	m.Position = req.Position
	m.Phone = strings.TrimSpace(req.Phone)
	m.Email = strings.TrimSpace(req.Email)
	m.ReceptionDays = req.ReceptionDays
	m.Bio = req.Bio
	m.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := h.Management.Update(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// UploadManagementPhoto attaches a portrait to a leadership entry.
func (h *InstituteHandler) UploadManagementPhoto(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	m, err := h.Management.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	path, ok := saveUpload(c, h.Store, "file", "management", storage.KindImage)
	if !ok {
		return nil
	}
	if err := h.Management.SetPhoto(ctx, id, path); err != nil {
		_ = h.Store.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if m.PhotoPath != "" {
		_ = h.Store.Remove(m.PhotoPath)
	}
	return c.JSON(http.StatusOK, echo.Map{"photo_path": path})
}

// ----- structural divisions -----

// ListDivisions returns structural divisions in display order.
func (h *InstituteHandler) ListDivisions(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.Divisions.List(ctx, skip, limit, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views := make([]personView, 0, len(items))
	for _, d := range items {
		views = append(views, personView{
			ID:           d.ID,
			FullName:     localized(d.FullName, lang, h.Cfg.Languages),
			Position:     localized(d.Position, lang, h.Cfg.Languages),
			Department:   localized(d.Department, lang, h.Cfg.Languages),
			Phone:        d.Phone,
			Email:        d.Email,
			Bio:          localized(d.Bio, lang, h.Cfg.Languages),
			PhotoPath:    d.PhotoPath,
			DisplayOrder: d.DisplayOrder,
		})
	}
	return c.JSON(http.StatusOK, views)
}

// CreateDivision inserts a structural division entry.
func (h *InstituteHandler) CreateDivision(c echo.Context) error {
	var req struct {
		FullName     i18n.Text `json:"full_name"`
		Position     i18n.Text `json:"position"`
		Department   i18n.Text `json:"department"`
		Phone        string    `json:"phone"`
		Email        string    `json:"email"`
		Bio          i18n.Text `json:"bio"`
		DisplayOrder int       `json:"display_order"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := i18n.ValidateAll(h.Cfg.Languages, map[string]i18n.Text{
		"full_name":  req.FullName,
		"position":   req.Position,
		"department": req.Department,
	}); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	d := repository.StructuralDivision{
		FullName:     req.FullName,
		Position:     req.Position,
		Department:   req.Department,
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		Bio:          req.Bio,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.Divisions.Create(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, d)
}

// UpdateDivision replaces a structural division entry.
func (h *InstituteHandler) UpdateDivision(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		FullName     i18n.Text `json:"full_name"`
		Position     i18n.Text `json:"position"`
		Department   i18n.Text `json:"department"`
		Phone        string    `json:"phone"`
		Email        string    `json:"email"`
		Bio          i18n.Text `json:"bio"`
		DisplayOrder int       `json:"display_order"`
		IsActive     *bool     `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := i18n.ValidateAll(h.Cfg.Languages, map[string]i18n.Text{
		"full_name":  req.FullName,
		"position":   req.Position,
		"department": req.Department,
	}); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	d, err := h.Divisions.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "division not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	d.FullName = req.FullName
	d.Position = req.Position
	d.Department = req.Department
	d.Phone = strings.TrimSpace(req.Phone)
	d.Email = strings.TrimSpace(req.Email)
	d.Bio = req.Bio
	d.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	if err := h.Divisions.Update(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// UploadDivisionPhoto attaches a portrait to a division entry.
func (h *InstituteHandler) UploadDivisionPhoto(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	d, err := h.Divisions.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "division not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	path, ok := saveUpload(c, h.Store, "file", "divisions", storage.KindImage)
	if !ok {
		return nil
	}
	if err := h.Divisions.SetPhoto(ctx, id, path); err != nil {
		_ = h.Store.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if d.PhotoPath != "" {
		_ = h.Store.Remove(d.PhotoPath)
	}
	return c.JSON(http.StatusOK, echo.Map{"photo_path": path})
}

// ----- vacancies -----

// ListVacancies returns open positions in the request language.
func (h *InstituteHandler) ListVacancies(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.Vacancies.List(ctx, skip, limit, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	type view struct {
		ID           uint64 `json:"id"`
		Position     string `json:"position"`
		Department   string `json:"department"`
		Requirements string `json:"requirements"`
		Status       string `json:"vacancy_status"`
		SalaryRange  string `json:"salary_range,omitempty"`
		Deadline     string `json:"deadline,omitempty"`
	}
	views := make([]view, 0, len(items))
	for _, v := range items {
		out := view{
			ID:           v.ID,
			Position:     localized(v.Position, lang, h.Cfg.Languages),
			Department:   localized(v.Department, lang, h.Cfg.Languages),
			Requirements: localized(v.Requirements, lang, h.Cfg.Languages),
			Status:       localized(v.Status, lang, h.Cfg.Languages),
			SalaryRange:  v.SalaryRange,
		}
		if v.Deadline.Valid {
			out.Deadline = v.Deadline.Time.Format(dateLayout)
		}
		views = append(views, out)
	}
	return c.JSON(http.StatusOK, views)
}

type vacancyReq struct {
	Position     i18n.Text `json:"position"`
	Department   i18n.Text `json:"department"`
	Requirements i18n.Text `json:"requirements"`
	Status       i18n.Text `json:"vacancy_status"`
	SalaryRange  string    `json:"salary_range"`
	Deadline     string    `json:"deadline"`
	IsActive     *bool     `json:"is_active"`
}

func (h *InstituteHandler) bindVacancy(c echo.Context, v *repository.Vacancy) (bool, error) {
	var req vacancyReq
	if err := c.Bind(&req); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := i18n.ValidateAll(h.Cfg.Languages, map[string]i18n.Text{
		"position":     req.Position,
		"department":   req.Department,
		"requirements": req.Requirements,
	}); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	v.Position = req.Position
	v.Department = req.Department
	v.Requirements = req.Requirements
	v.Status = req.Status
	v.SalaryRange = strings.TrimSpace(req.SalaryRange)
	if strings.TrimSpace(req.Deadline) != "" {
		d, err := parseDate(req.Deadline)
		if err != nil {
			return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "deadline must be YYYY-MM-DD"})
		}
		v.Deadline = sql.NullTime{Time: d, Valid: true}
	} else {
		v.Deadline = sql.NullTime{}
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	return true, nil
}

// CreateVacancy inserts an open position.
func (h *InstituteHandler) CreateVacancy(c echo.Context) error {
	var v repository.Vacancy
	v.IsActive = true
	if ok, err := h.bindVacancy(c, &v); !ok {
		return err
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()
	if err := h.Vacancies.Create(ctx, &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, v)
}

// UpdateVacancy replaces an open position.
func (h *InstituteHandler) UpdateVacancy(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	v, err := h.Vacancies.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vacancy not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if ok, err := h.bindVacancy(c, &v); !ok {
		return err
	}
	if err := h.Vacancies.Update(ctx, &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, v)
}
