package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/auth"
	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/middleware"
	"github.com/tmsiti/institute-api/internal/repository"
)

// AccountStore is the slice of the user repository the auth endpoints
// need.  Tests substitute a stub.
type AccountStore interface {
	Create(ctx context.Context, u *repository.User, password string, cost int) (uint64, error)
	GetByID(ctx context.Context, id uint64) (repository.User, error)
	GetByLogin(ctx context.Context, login string) (repository.User, error)
	TouchLastLogin(ctx context.Context, id uint64) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  AccountStore
	Tokens *auth.TokenService
}

func NewAuthHandler(cfg config.Config, u AccountStore, t *auth.TokenService) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}
type loginReq struct {
	Login    string `json:"login"` // username or email
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User    repository.User `json:"user"`
	Access  tokenPart       `json:"access"`
	Refresh tokenPart       `json:"refresh"`
}

func (h *AuthHandler) issuePair(u repository.User, c echo.Context, status int) error {
	access, accessExp, err := h.Tokens.IssueAccess(u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, refreshExp, err := h.Tokens.IssueRefresh(u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	return c.JSON(status, authResp{
		User:    u,
		Access:  tokenPart{Token: access, Expires: accessExp},
		Refresh: tokenPart{Token: refresh, Expires: refreshExp},
	})
}

// Register creates a regular account and returns tokens immediately.
// Staff roles are only granted later through the admin surface.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	u := repository.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
		IsActive: true,
	}
	uid, err := h.Users.Create(ctx, &u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrUsernameExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	created, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	return h.issuePair(created, c, http.StatusCreated)
}

// Login verifies credentials (username or email) and returns a new pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Login = strings.ToLower(strings.TrimSpace(req.Login))
	if req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login/password required"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	u, err := h.Users.GetByLogin(ctx, req.Login)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
	}

	// Best effort; login must not fail over a bookkeeping column.
	_ = h.Users.TouchLastLogin(ctx, u.ID)

	return h.issuePair(u, c, http.StatusOK)
}

// Refresh exchanges a valid refresh token for a fresh pair.  Tokens are
// stateless, so rotation here simply issues new ones.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	claims, err := h.Tokens.Decode(strings.TrimSpace(req.RefreshToken))
	if err != nil {
		if err == auth.ErrExpiredToken {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "refresh token expired"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if claims.Type != auth.TokenTypeRefresh {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "refresh token required"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
	}

	return h.issuePair(u, c, http.StatusOK)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, u)
}
