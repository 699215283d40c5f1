package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tmsiti/institute-api/internal/i18n"
)

// Activity pages: the management-systems singleton and the laboratory list.

// ManagementSystem mirrors the 'management_systems' table, a singleton page
// describing the institute's certification activity, with an optional
// attached document.
type ManagementSystem struct {
	ID        uint64    `json:"id"`
	Content   i18n.Text `json:"content"`
	PdfPath   string    `json:"pdf_path,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ManagementSystemRepo struct{ db *sql.DB }

func NewManagementSystemRepo(db *sql.DB) *ManagementSystemRepo {
	return &ManagementSystemRepo{db: db}
}

const managementSystemColumns = `id, content_uz, content_ru, content_en,
	COALESCE(pdf_path,''), is_active, created_at, updated_at`

// GetActive returns the active management-systems row.
func (r *ManagementSystemRepo) GetActive(ctx context.Context) (ManagementSystem, error) {
	var m ManagementSystem
	err := r.db.QueryRowContext(ctx,
		"SELECT "+managementSystemColumns+" FROM management_systems WHERE is_active=1 LIMIT 1").
		Scan(&m.ID, &m.Content.Uz, &m.Content.Ru, &m.Content.En,
			&m.PdfPath, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return m, ErrNotFound
	}
	return m, err
}

// Upsert replaces the singleton page content.
func (r *ManagementSystemRepo) Upsert(ctx context.Context, m *ManagementSystem) error {
	existing, err := r.GetActive(ctx)
	switch err {
	case nil:
		m.ID = existing.ID
		if _, err := r.db.ExecContext(ctx,
			"UPDATE management_systems SET content_uz=?, content_ru=?, content_en=? WHERE id=?",
			m.Content.Uz, m.Content.Ru, m.Content.En, m.ID); err != nil {
			return err
		}
	case ErrNotFound:
		res, err := r.db.ExecContext(ctx,
			"INSERT INTO management_systems (content_uz, content_ru, content_en, is_active) VALUES (?,?,?,1)",
			m.Content.Uz, m.Content.Ru, m.Content.En)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		m.ID = uint64(id)
	default:
		return err
	}
	got, err := r.GetActive(ctx)
	if err != nil {
		return err
	}
	*m = got
	return nil
}

// SetPdf stores an uploaded document path against the page.
func (r *ManagementSystemRepo) SetPdf(ctx context.Context, id uint64, path string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE management_systems SET pdf_path=? WHERE id=?", path, id)
	return err
}

// Laboratory mirrors the 'laboratories' table: testing laboratories with an
// optional accreditation link.
type Laboratory struct {
	ID          uint64    `json:"id"`
	Name        i18n.Text `json:"name"`
	Description i18n.Text `json:"description"`
	KslLink     string    `json:"ksl_link,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type LaboratoryRepo struct{ db *sql.DB }

func NewLaboratoryRepo(db *sql.DB) *LaboratoryRepo { return &LaboratoryRepo{db: db} }

const laboratoryColumns = `id, name_uz, name_ru, name_en,
	COALESCE(description_uz,''), COALESCE(description_ru,''), COALESCE(description_en,''),
	COALESCE(ksl_link,''), is_active, created_at, updated_at`

func (l *Laboratory) scan(s interface{ Scan(...any) error }) error {
	return s.Scan(&l.ID, &l.Name.Uz, &l.Name.Ru, &l.Name.En,
		&l.Description.Uz, &l.Description.Ru, &l.Description.En,
		&l.KslLink, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
}

// List returns active laboratories, optionally filtered by a substring search
// against the name in the active language.
func (r *LaboratoryRepo) List(ctx context.Context, skip, limit int, search, lang string) ([]Laboratory, error) {
	q := "SELECT " + laboratoryColumns + " FROM laboratories WHERE is_active=1"
	args := []any{}
	if search != "" {
		q += " AND " + searchColumn("name", lang) + " LIKE ?"
		args = append(args, like(search))
	}
	q += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Laboratory
	for rows.Next() {
		var l Laboratory
		if err := l.scan(rows); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Get fetches one active laboratory.
func (r *LaboratoryRepo) Get(ctx context.Context, id uint64) (Laboratory, error) {
	var l Laboratory
	err := l.scan(r.db.QueryRowContext(ctx,
		"SELECT "+laboratoryColumns+" FROM laboratories WHERE id=? AND is_active=1 LIMIT 1", id))
	if err == sql.ErrNoRows {
		return l, ErrNotFound
	}
	return l, err
}

// Create inserts a laboratory.
func (r *LaboratoryRepo) Create(ctx context.Context, l *Laboratory) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO laboratories (name_uz, name_ru, name_en,
		 description_uz, description_ru, description_en, ksl_link, is_active)
		 VALUES (?,?,?,?,?,?,?,1)`,
		l.Name.Uz, l.Name.Ru, l.Name.En,
		nullable(l.Description.Uz), nullable(l.Description.Ru), nullable(l.Description.En),
		nullable(l.KslLink))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return l.scan(r.db.QueryRowContext(ctx,
		"SELECT "+laboratoryColumns+" FROM laboratories WHERE id=?", l.ID))
}

// Update persists the mutable fields of l.
func (r *LaboratoryRepo) Update(ctx context.Context, l *Laboratory) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE laboratories SET name_uz=?, name_ru=?, name_en=?,
		 description_uz=?, description_ru=?, description_en=?, ksl_link=?, is_active=? WHERE id=?`,
		l.Name.Uz, l.Name.Ru, l.Name.En,
		nullable(l.Description.Uz), nullable(l.Description.Ru), nullable(l.Description.En),
		nullable(l.KslLink), l.IsActive, l.ID)
	return err
}
