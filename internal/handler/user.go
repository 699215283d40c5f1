package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/auth"
	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/middleware"
	"github.com/tmsiti/institute-api/internal/repository"
	"github.com/tmsiti/institute-api/internal/storage"
)

// UserHandler serves the authenticated account's own profile.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Store *storage.Store
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, s *storage.Store) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Store: s}
}

type updateProfileReq struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Bio      *string `json:"bio"`
}

// UpdateMe applies a partial profile update.  Username and email changes are
// checked for collisions against other accounts before saving.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	if req.Username != nil {
		name := strings.ToLower(strings.TrimSpace(*req.Username))
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username cannot be empty"})
		}
		taken, err := h.Users.UsernameTaken(ctx, name, u.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if taken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		u.Username = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
		}
		taken, err := h.Users.EmailTaken(ctx, email, u.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if taken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		u.Email = email
	}
	if req.FullName != nil {
		u.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Bio != nil {
		u.Bio = strings.TrimSpace(*req.Bio)
	}

	if err := h.Users.Update(ctx, u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, u)
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword verifies the current password before storing a new hash.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.NewPassword) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "current password is incorrect"})
	}

	hash, err := auth.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()
	if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

// UploadAvatar stores a profile picture and records its path.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	path, ok := saveUpload(c, h.Store, "file", "avatars", storage.KindImage)
	if !ok {
		return nil
	}

	old := u.Avatar
	u.Avatar = path

	ctx, cancel := dbTimeout(c)
	defer cancel()
	if err := h.Users.Update(ctx, u); err != nil {
		_ = h.Store.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if old != "" {
		_ = h.Store.Remove(old)
	}
	return c.JSON(http.StatusOK, echo.Map{"avatar": path})
}
