package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tmsiti/institute-api/internal/i18n"
)

// Contact mirrors the 'contacts' table: inquiries submitted through the
// public contact form and processed by moderators.
type Contact struct {
	ID            uint64       `json:"id"`
	FullName      string       `json:"full_name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone,omitempty"`
	Subject       string       `json:"subject"`
	Message       string       `json:"message"`
	IsRead        bool         `json:"is_read"`
	IsReplied     bool         `json:"is_replied"`
	AdminResponse string       `json:"admin_response,omitempty"`
	RespondedAt   sql.NullTime `json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type ContactRepo struct{ db *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactColumns = `id, full_name, email, COALESCE(phone,''), subject, message,
	is_read, is_replied, COALESCE(admin_response,''), responded_at, created_at, updated_at`

func (c *Contact) scan(s interface{ Scan(...any) error }) error {
	return s.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.IsRead, &c.IsReplied, &c.AdminResponse, &c.RespondedAt, &c.CreatedAt, &c.UpdatedAt)
}

// ContactFilter narrows List.  UnreadOnly keeps inquiries nobody has opened
// yet; Search matches sender name, email, subject and message body.
type ContactFilter struct {
	Skip       int
	Limit      int
	UnreadOnly bool
	Search     string
}

// Create stores a new inquiry from the public form.
func (r *ContactRepo) Create(ctx context.Context, c *Contact) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contacts (full_name, email, phone, subject, message, is_read, is_replied)
		 VALUES (?,?,?,?,?,0,0)`,
		c.FullName, c.Email, nullable(c.Phone), c.Subject, c.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return c.scan(r.db.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE id=?", c.ID))
}

// List returns inquiries newest first.
func (r *ContactRepo) List(ctx context.Context, f ContactFilter) ([]Contact, error) {
	q := "SELECT " + contactColumns + " FROM contacts WHERE 1=1"
	args := []any{}
	if f.UnreadOnly {
		q += " AND is_read=0"
	}
	if f.Search != "" {
		q += " AND (full_name LIKE ? OR email LIKE ? OR subject LIKE ? OR message LIKE ?)"
		s := like(f.Search)
		args = append(args, s, s, s, s)
	}
	q += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Contact
	for rows.Next() {
		var c Contact
		if err := c.scan(rows); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get fetches one inquiry.
func (r *ContactRepo) Get(ctx context.Context, id uint64) (Contact, error) {
	var c Contact
	err := c.scan(r.db.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// MarkRead flags an inquiry as opened.  Fetching through the moderation view
// calls this so unread counts stay honest.
func (r *ContactRepo) MarkRead(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE contacts SET is_read=1 WHERE id=?", id)
	return err
}

// Respond records an admin response.  A non-empty response marks the inquiry
// replied and stamps the response time.
func (r *ContactRepo) Respond(ctx context.Context, id uint64, response string) (Contact, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE contacts SET admin_response=?, is_replied=1, is_read=1, responded_at=NOW() WHERE id=?",
		response, id); err != nil {
		return Contact{}, err
	}
	return r.Get(ctx, id)
}

// Delete removes an inquiry.
func (r *ContactRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contacts WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ContactStats summarises the inbox for the moderation dashboard.
type ContactStats struct {
	Total   int `json:"total_contacts"`
	Unread  int `json:"unread_contacts"`
	Replied int `json:"replied_contacts"`
}

// Stats counts inquiries in one round trip.
func (r *ContactRepo) Stats(ctx context.Context) (ContactStats, error) {
	var s ContactStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(is_read=0),0),
		        COALESCE(SUM(is_replied=1),0)
		 FROM contacts`).
		Scan(&s.Total, &s.Unread, &s.Replied)
	return s, err
}

// AntiCorruption mirrors the 'anti_corruption' table, the singleton
// compliance page with its hotline details.
type AntiCorruption struct {
	ID           uint64    `json:"id"`
	Content      i18n.Text `json:"content"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Hotline      i18n.Text `json:"hotline"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AntiCorruptionRepo struct{ db *sql.DB }

func NewAntiCorruptionRepo(db *sql.DB) *AntiCorruptionRepo {
	return &AntiCorruptionRepo{db: db}
}

const antiCorruptionColumns = `id, content_uz, content_ru, content_en,
	COALESCE(contact_phone,''), COALESCE(contact_email,''),
	COALESCE(hotline_uz,''), COALESCE(hotline_ru,''), COALESCE(hotline_en,''),
	is_active, created_at, updated_at`

// GetActive returns the active anti-corruption page.
func (r *AntiCorruptionRepo) GetActive(ctx context.Context) (AntiCorruption, error) {
	var a AntiCorruption
	err := r.db.QueryRowContext(ctx,
		"SELECT "+antiCorruptionColumns+" FROM anti_corruption WHERE is_active=1 LIMIT 1").
		Scan(&a.ID, &a.Content.Uz, &a.Content.Ru, &a.Content.En,
			&a.ContactPhone, &a.ContactEmail,
			&a.Hotline.Uz, &a.Hotline.Ru, &a.Hotline.En,
			&a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// Upsert replaces the singleton page.
func (r *AntiCorruptionRepo) Upsert(ctx context.Context, a *AntiCorruption) error {
	existing, err := r.GetActive(ctx)
	switch err {
	case nil:
		a.ID = existing.ID
		if _, err := r.db.ExecContext(ctx,
			`UPDATE anti_corruption SET content_uz=?, content_ru=?, content_en=?,
			 contact_phone=?, contact_email=?, hotline_uz=?, hotline_ru=?, hotline_en=? WHERE id=?`,
			a.Content.Uz, a.Content.Ru, a.Content.En,
			nullable(a.ContactPhone), nullable(a.ContactEmail),
			nullable(a.Hotline.Uz), nullable(a.Hotline.Ru), nullable(a.Hotline.En), a.ID); err != nil {
			return err
		}
	case ErrNotFound:
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO anti_corruption (content_uz, content_ru, content_en,
			 contact_phone, contact_email, hotline_uz, hotline_ru, hotline_en, is_active)
			 VALUES (?,?,?,?,?,?,?,?,1)`,
			a.Content.Uz, a.Content.Ru, a.Content.En,
			nullable(a.ContactPhone), nullable(a.ContactEmail),
			nullable(a.Hotline.Uz), nullable(a.Hotline.Ru), nullable(a.Hotline.En))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
	default:
		return err
	}
	got, err := r.GetActive(ctx)
	if err != nil {
		return err
	}
	*a = got
	return nil
}
