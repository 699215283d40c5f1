package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/i18n"
	"github.com/tmsiti/institute-api/internal/middleware"
	"github.com/tmsiti/institute-api/internal/queue"
	"github.com/tmsiti/institute-api/internal/repository"
	queue_publisher "github.com/tmsiti/institute-api/internal/service"
)

// ContactHandler serves the public contact form, the staff inquiry inbox and
// the anti-corruption page.
type ContactHandler struct {
	Cfg            config.Config
	Contacts       *repository.ContactRepo
	AntiCorruption *repository.AntiCorruptionRepo
}

type contactReq struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// Submit stores an inquiry from the public form.  A broker event goes out
// after the row is saved; delivery problems never fail the submission.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if req.FullName == "" || req.Subject == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name/subject/message required"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	inquiry := repository.Contact{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    strings.TrimSpace(req.Phone),
		Subject:  req.Subject,
		Message:  req.Message,
	}
	if err := h.Contacts.Create(ctx, &inquiry); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}

	go func(ev queue.ContactSubmittedEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishContactSubmitted(pubCtx, h.Cfg.AMQPURL, ev)
	}(queue.ContactSubmittedEvent{
		ContactID:   inquiry.ID,
		FullName:    inquiry.FullName,
		Email:       inquiry.Email,
		Phone:       inquiry.Phone,
		Subject:     inquiry.Subject,
		SubmittedAt: inquiry.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"id":      inquiry.ID,
		"message": middleware.Localize(c, "inquiry.received", nil),
	})
}

// List returns inquiries for staff, newest first.  ?unread_only=true narrows
// to unopened ones; ?search matches sender details and the message body.
func (h *ContactHandler) List(c echo.Context) error {
	skip, limit := pageParams(c)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	f := repository.ContactFilter{
		Skip:       skip,
		Limit:      limit,
		UnreadOnly: c.QueryParam("unread_only") == "true" || c.QueryParam("unread_only") == "1",
		Search:     c.QueryParam("search"),
	}
	items, err := h.Contacts.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one inquiry and marks it read.
func (h *ContactHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	inquiry, err := h.Contacts.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inquiry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !inquiry.IsRead {
		if err := h.Contacts.MarkRead(ctx, id); err == nil {
			inquiry.IsRead = true
		}
	}
	return c.JSON(http.StatusOK, inquiry)
}

// Respond records a staff response to an inquiry.
func (h *ContactHandler) Respond(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		AdminResponse string `json:"admin_response"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.AdminResponse) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "admin_response required"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	if _, err := h.Contacts.Get(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inquiry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	inquiry, err := h.Contacts.Respond(ctx, id, strings.TrimSpace(req.AdminResponse))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, inquiry)
}

// Delete removes an inquiry.
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	if err := h.Contacts.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inquiry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats summarises the inquiry inbox for the dashboard.
func (h *ContactHandler) Stats(c echo.Context) error {
	ctx, cancel := dbTimeout(c)
	defer cancel()

	s, err := h.Contacts.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// GetAntiCorruption returns the compliance page in the request language.
func (h *ContactHandler) GetAntiCorruption(c echo.Context) error {
	ctx, cancel := dbTimeout(c)
	defer cancel()

	a, err := h.AntiCorruption.GetActive(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "page not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	lang := requestLang(c, h.Cfg.DefaultLang)
	return c.JSON(http.StatusOK, echo.Map{
		"id":            a.ID,
		"content":       localized(a.Content, lang, h.Cfg.Languages),
		"contact_phone": a.ContactPhone,
		"contact_email": a.ContactEmail,
		"hotline":       localized(a.Hotline, lang, h.Cfg.Languages),
	})
}

// UpsertAntiCorruption replaces the compliance page.
func (h *ContactHandler) UpsertAntiCorruption(c echo.Context) error {
	var req struct {
		Content      i18n.Text `json:"content"`
		ContactPhone string    `json:"contact_phone"`
		ContactEmail string    `json:"contact_email"`
		Hotline      i18n.Text `json:"hotline"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Content.Validate("content", h.Cfg.Languages); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	a := repository.AntiCorruption{
		Content:      req.Content,
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		Hotline:      req.Hotline,
	}
	if err := h.AntiCorruption.Upsert(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, a)
}
