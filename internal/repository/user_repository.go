package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/tmsiti/institute-api/internal/auth"
)

// User mirrors the 'users' table.  Phone, bio and avatar are optional and
// scanned through COALESCE so the struct carries plain strings.
type User struct {
	ID           uint64       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	FullName     string       `json:"full_name"`
	Phone        string       `json:"phone,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Avatar       string       `json:"avatar,omitempty"`
	PasswordHash string       `json:"-"`
	IsActive     bool         `json:"is_active"`
	IsAdmin      bool         `json:"is_admin"`
	IsModerator  bool         `json:"is_moderator"`
	LastLogin    sql.NullTime `json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Role computes the closed role for this user from its stored flags.
func (u *User) Role() auth.Role { return auth.RoleFromFlags(u.IsAdmin, u.IsModerator) }

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, username, email, full_name,
	COALESCE(phone,''), COALESCE(bio,''), COALESCE(avatar,''),
	password_hash, is_active, is_admin, is_moderator, last_login,
	created_at, updated_at`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName,
		&u.Phone, &u.Bio, &u.Avatar,
		&u.PasswordHash, &u.IsActive, &u.IsAdmin, &u.IsModerator, &u.LastLogin,
		&u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// Create inserts a user, hashing the plaintext password, and returns its ID.
// The uniqueness errors distinguish which constraint was hit so handlers can
// report the offending field.
func (r *UserRepo) Create(ctx context.Context, u *User, password string, cost int) (uint64, error) {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, full_name, phone, bio, password_hash, is_active, is_admin, is_moderator)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		u.Username, u.Email, u.FullName, u.Phone, u.Bio, hash, true, u.IsAdmin, u.IsModerator)
	if err != nil {
		if isDuplicate(err) {
			if strings.Contains(err.Error(), "username") {
				return 0, ErrUsernameExists
			}
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByLogin fetches a user whose username or email matches login.  Login
// endpoints accept either, the way the admin panel's operators expect.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (User, error) {
	login = strings.TrimSpace(login)
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? OR email=? LIMIT 1",
		login, strings.ToLower(login)))
}

// List returns users ordered by id with offset/limit pagination.
func (r *UserRepo) List(ctx context.Context, skip, limit int) ([]User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FullName,
			&u.Phone, &u.Bio, &u.Avatar,
			&u.PasswordHash, &u.IsActive, &u.IsAdmin, &u.IsModerator, &u.LastLogin,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update persists mutable profile and role fields of u.  Callers load the
// row first, apply their changes and save, which keeps partial-update
// semantics in one place.
func (r *UserRepo) Update(ctx context.Context, u *User) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET username=?, email=?, full_name=?, phone=?, bio=?, avatar=?,
		 is_active=?, is_admin=?, is_moderator=? WHERE id=?`,
		u.Username, u.Email, u.FullName, u.Phone, u.Bio, u.Avatar,
		u.IsActive, u.IsAdmin, u.IsModerator, u.ID)
	if isDuplicate(err) {
		if strings.Contains(err.Error(), "username") {
			return ErrUsernameExists
		}
		return ErrEmailExists
	}
	return err
}

// UpdatePassword replaces the stored hash for a user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE id=?", hash, id)
	return err
}

// TouchLastLogin records a successful login.  Token decoding never calls
// this; only the login flow has the side effect.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET last_login=NOW() WHERE id=?", id)
	return err
}

// UsernameTaken reports whether another user (excluding excludeID) already
// holds username.
func (r *UserRepo) UsernameTaken(ctx context.Context, username string, excludeID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username=? AND id<>?",
		strings.TrimSpace(username), excludeID).Scan(&n)
	return n > 0, err
}

// EmailTaken reports whether another user (excluding excludeID) already
// holds email.
func (r *UserRepo) EmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email=? AND id<>?",
		strings.ToLower(strings.TrimSpace(email)), excludeID).Scan(&n)
	return n > 0, err
}

// Delete removes a user row.  Returns ErrNotFound when nothing was deleted.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UserStats aggregates counters for the admin dashboard.
type UserStats struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Admins     int64 `json:"admins"`
	Moderators int64 `json:"moderators"`
}

// Stats computes the dashboard counters in a single query.
func (r *UserRepo) Stats(ctx context.Context) (UserStats, error) {
	var s UserStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(is_active),0),
		        COALESCE(SUM(is_admin),0),
		        COALESCE(SUM(is_moderator),0)
		 FROM users`).Scan(&s.Total, &s.Active, &s.Admins, &s.Moderators)
	return s, err
}
