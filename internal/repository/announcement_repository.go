package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tmsiti/institute-api/internal/i18n"
)

// Announcement mirrors the 'announcements' table.  Same shape as News minus
// the featured flag.
type Announcement struct {
	ID          uint64    `json:"id"`
	Title       i18n.Text `json:"title"`
	Content     i18n.Text `json:"content"`
	ImagePath   string    `json:"image_path,omitempty"`
	VideoPath   string    `json:"video_path,omitempty"`
	IsActive    bool      `json:"is_active"`
	PublishedAt time.Time `json:"published_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AnnouncementRepo struct{ db *sql.DB }

func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo { return &AnnouncementRepo{db: db} }

const announcementColumns = `id, title_uz, title_ru, title_en, content_uz, content_ru, content_en,
	COALESCE(image_path,''), COALESCE(video_path,''), is_active,
	published_date, created_at, updated_at`

func (a *Announcement) scan(s interface{ Scan(...any) error }) error {
	return s.Scan(&a.ID, &a.Title.Uz, &a.Title.Ru, &a.Title.En,
		&a.Content.Uz, &a.Content.Ru, &a.Content.En,
		&a.ImagePath, &a.VideoPath, &a.IsActive,
		&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
}

// announcementWhere builds the clause and args shared by List and Count.
func announcementWhere(search, lang string) (string, []any) {
	q := " WHERE is_active=1"
	args := []any{}
	if search != "" {
		q += " AND (" + searchColumn("title", lang) + " LIKE ? OR " + searchColumn("content", lang) + " LIKE ?)"
		args = append(args, like(search), like(search))
	}
	return q, args
}

// List returns active announcements ordered by publish date, newest first,
// optionally filtered by a substring search in the active language.
func (r *AnnouncementRepo) List(ctx context.Context, skip, limit int, search, lang string) ([]Announcement, error) {
	where, args := announcementWhere(search, lang)
	q := "SELECT " + announcementColumns + " FROM announcements" + where + " ORDER BY published_date DESC LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Announcement
	for rows.Next() {
		var a Announcement
		if err := a.scan(rows); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Get fetches one active announcement.
func (r *AnnouncementRepo) Get(ctx context.Context, id uint64) (Announcement, error) {
	var a Announcement
	err := a.scan(r.db.QueryRowContext(ctx,
		"SELECT "+announcementColumns+" FROM announcements WHERE id=? AND is_active=1 LIMIT 1", id))
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// GetAny fetches an announcement regardless of its active flag.
func (r *AnnouncementRepo) GetAny(ctx context.Context, id uint64) (Announcement, error) {
	var a Announcement
	err := a.scan(r.db.QueryRowContext(ctx,
		"SELECT "+announcementColumns+" FROM announcements WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// Create inserts an announcement and populates the generated fields.
func (r *AnnouncementRepo) Create(ctx context.Context, a *Announcement) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO announcements (title_uz, title_ru, title_en, content_uz, content_ru, content_en,
		 image_path, video_path, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		a.Title.Uz, a.Title.Ru, a.Title.En, a.Content.Uz, a.Content.Ru, a.Content.En,
		nullable(a.ImagePath), nullable(a.VideoPath), true)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return a.scan(r.db.QueryRowContext(ctx,
		"SELECT "+announcementColumns+" FROM announcements WHERE id=?", a.ID))
}

// Update persists the mutable fields of a.
func (r *AnnouncementRepo) Update(ctx context.Context, a *Announcement) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE announcements SET title_uz=?, title_ru=?, title_en=?,
		 content_uz=?, content_ru=?, content_en=?,
		 image_path=?, video_path=?, is_active=? WHERE id=?`,
		a.Title.Uz, a.Title.Ru, a.Title.En, a.Content.Uz, a.Content.Ru, a.Content.En,
		nullable(a.ImagePath), nullable(a.VideoPath), a.IsActive, a.ID)
	return err
}

// Delete removes an announcement row.
func (r *AnnouncementRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM announcements WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of active announcements matching the filter.
func (r *AnnouncementRepo) Count(ctx context.Context, search, lang string) (int64, error) {
	where, args := announcementWhere(search, lang)
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM announcements"+where, args...).Scan(&n)
	return n, err
}
