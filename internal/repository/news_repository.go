package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tmsiti/institute-api/internal/i18n"
)

// News mirrors the 'news' table.  Title and Content are localized trios;
// Image and Video hold relative paths under the static upload root.
type News struct {
	ID          uint64    `json:"id"`
	Title       i18n.Text `json:"title"`
	Content     i18n.Text `json:"content"`
	ImagePath   string    `json:"image_path,omitempty"`
	VideoPath   string    `json:"video_path,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
	PublishedAt time.Time `json:"published_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NewsRepo struct{ db *sql.DB }

func NewNewsRepo(db *sql.DB) *NewsRepo { return &NewsRepo{db: db} }

const newsColumns = `id, title_uz, title_ru, title_en, content_uz, content_ru, content_en,
	COALESCE(image_path,''), COALESCE(video_path,''), is_active, is_featured,
	published_date, created_at, updated_at`

func (n *News) scan(s interface{ Scan(...any) error }) error {
	return s.Scan(&n.ID, &n.Title.Uz, &n.Title.Ru, &n.Title.En,
		&n.Content.Uz, &n.Content.Ru, &n.Content.En,
		&n.ImagePath, &n.VideoPath, &n.IsActive, &n.IsFeatured,
		&n.PublishedAt, &n.CreatedAt, &n.UpdatedAt)
}

// NewsFilter narrows List results.  Search matches the title or content
// column of the given language as a substring.
type NewsFilter struct {
	Skip     int
	Limit    int
	Search   string
	Lang     string
	Featured *bool
}

// where builds the clause and args shared by List and Count so the paging
// total reflects the same filters as the page itself.
func (f NewsFilter) where() (string, []any) {
	q := " WHERE is_active=1"
	args := []any{}
	if f.Featured != nil {
		q += " AND is_featured=?"
		args = append(args, *f.Featured)
	}
	if f.Search != "" {
		q += " AND (" + searchColumn("title", f.Lang) + " LIKE ? OR " + searchColumn("content", f.Lang) + " LIKE ?)"
		args = append(args, like(f.Search), like(f.Search))
	}
	return q, args
}

// List returns active news ordered by publish date, newest first.
func (r *NewsRepo) List(ctx context.Context, f NewsFilter) ([]News, error) {
	where, args := f.where()
	q := "SELECT " + newsColumns + " FROM news" + where + " ORDER BY published_date DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []News
	for rows.Next() {
		var n News
		if err := n.scan(rows); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Get fetches one active news item.
func (r *NewsRepo) Get(ctx context.Context, id uint64) (News, error) {
	var n News
	err := n.scan(r.db.QueryRowContext(ctx,
		"SELECT "+newsColumns+" FROM news WHERE id=? AND is_active=1 LIMIT 1", id))
	if err == sql.ErrNoRows {
		return n, ErrNotFound
	}
	return n, err
}

// GetAny fetches a news item regardless of its active flag, for moderation.
func (r *NewsRepo) GetAny(ctx context.Context, id uint64) (News, error) {
	var n News
	err := n.scan(r.db.QueryRowContext(ctx,
		"SELECT "+newsColumns+" FROM news WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return n, ErrNotFound
	}
	return n, err
}

// Create inserts a news row and populates the generated fields.
func (r *NewsRepo) Create(ctx context.Context, n *News) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO news (title_uz, title_ru, title_en, content_uz, content_ru, content_en,
		 image_path, video_path, is_active, is_featured)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		n.Title.Uz, n.Title.Ru, n.Title.En, n.Content.Uz, n.Content.Ru, n.Content.En,
		nullable(n.ImagePath), nullable(n.VideoPath), true, n.IsFeatured)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return n.scan(r.db.QueryRowContext(ctx,
		"SELECT "+newsColumns+" FROM news WHERE id=?", n.ID))
}

// Update persists the mutable fields of n.
func (r *NewsRepo) Update(ctx context.Context, n *News) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE news SET title_uz=?, title_ru=?, title_en=?,
		 content_uz=?, content_ru=?, content_en=?,
		 image_path=?, video_path=?, is_active=?, is_featured=? WHERE id=?`,
		n.Title.Uz, n.Title.Ru, n.Title.En, n.Content.Uz, n.Content.Ru, n.Content.En,
		nullable(n.ImagePath), nullable(n.VideoPath), n.IsActive, n.IsFeatured, n.ID)
	return err
}

// Delete removes a news row.
func (r *NewsRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM news WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of active news rows matching f.  A zero filter
// counts everything active, which is what the admin dashboard wants.
func (r *NewsRepo) Count(ctx context.Context, f NewsFilter) (int64, error) {
	where, args := f.where()
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news"+where, args...).Scan(&n)
	return n, err
}

// nullable maps an empty string to SQL NULL for optional path columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
