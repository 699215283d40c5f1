package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/middleware"
	"github.com/tmsiti/institute-api/internal/repository"
)

// AdminHandler serves user administration and the dashboard.  Every route
// here sits behind the admin role gate except the read-only user listing,
// which moderators also get.
type AdminHandler struct {
	Cfg           config.Config
	Users         *repository.UserRepo
	Contacts      *repository.ContactRepo
	News          *repository.NewsRepo
	Announcements *repository.AnnouncementRepo
}

// ListUsers returns accounts ordered by id.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	skip, limit := pageParams(c)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	users, err := h.Users.List(ctx, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns one account.
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, u)
}

// CreateUser provisions an account with role flags set, typically a new
// moderator.  Registration via the public endpoint always yields a plain
// user; this is the only way to mint staff accounts.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		FullName    string `json:"full_name"`
		Phone       string `json:"phone"`
		IsAdmin     bool   `json:"is_admin"`
		IsModerator bool   `json:"is_moderator"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and email required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	u := repository.User{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    strings.TrimSpace(req.FullName),
		Phone:       strings.TrimSpace(req.Phone),
		IsActive:    true,
		IsAdmin:     req.IsAdmin,
		IsModerator: req.IsModerator,
	}
	uid, err := h.Users.Create(ctx, &u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrUsernameExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	created, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

type adminUserReq struct {
	IsActive    *bool `json:"is_active"`
	IsAdmin     *bool `json:"is_admin"`
	IsModerator *bool `json:"is_moderator"`
}

// UpdateUser changes an account's role flags and active state.  An admin
// cannot strip their own admin flag or deactivate themselves; that keeps the
// instance from locking out its last administrator mid-session.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req adminUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	self, _ := middleware.CurrentUser(c)
	if self != nil && self.ID == id {
		if (req.IsAdmin != nil && !*req.IsAdmin) || (req.IsActive != nil && !*req.IsActive) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot demote or deactivate own account"})
		}
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}
	if req.IsModerator != nil {
		u.IsModerator = *req.IsModerator
	}
	if err := h.Users.Update(ctx, &u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, u)
}

// DeleteUser removes an account.  Self-deletion is rejected.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if self, ok := middleware.CurrentUser(c); ok && self.ID == id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete own account"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats returns the admin dashboard counters: accounts, published content
// and the inquiry inbox.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := dbTimeout(c)
	defer cancel()

	users, err := h.Users.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	contacts, err := h.Contacts.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	newsTotal, err := h.News.Count(ctx, repository.NewsFilter{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	annTotal, err := h.Announcements.Count(ctx, "", "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":         users,
		"contacts":      contacts,
		"news":          newsTotal,
		"announcements": annTotal,
	})
}
