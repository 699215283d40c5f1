package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tmsiti/institute-api/internal/i18n"
)

// Institute pages: the about and structure singletons, the management and
// structural-division person lists, and vacancies.

// About mirrors the 'about' table.  At most one active row is served.
type About struct {
	ID             uint64    `json:"id"`
	Content        i18n.Text `json:"content"`
	CertificatePdf string    `json:"certificate_pdf_path,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AboutRepo struct{ db *sql.DB }

func NewAboutRepo(db *sql.DB) *AboutRepo { return &AboutRepo{db: db} }

const aboutColumns = `id, content_uz, content_ru, content_en,
	COALESCE(certificate_pdf_path,''), is_active, created_at, updated_at`

// GetActive returns the active about row.
func (r *AboutRepo) GetActive(ctx context.Context) (About, error) {
	var a About
	err := r.db.QueryRowContext(ctx,
		"SELECT "+aboutColumns+" FROM about WHERE is_active=1 LIMIT 1").
		Scan(&a.ID, &a.Content.Uz, &a.Content.Ru, &a.Content.En,
			&a.CertificatePdf, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// Upsert updates the active row when one exists, otherwise inserts one.
// The page is a singleton; editors replace it rather than accumulate rows.
func (r *AboutRepo) Upsert(ctx context.Context, a *About) error {
	existing, err := r.GetActive(ctx)
	switch err {
	case nil:
		a.ID = existing.ID
		if _, err := r.db.ExecContext(ctx,
			"UPDATE about SET content_uz=?, content_ru=?, content_en=? WHERE id=?",
			a.Content.Uz, a.Content.Ru, a.Content.En, a.ID); err != nil {
			return err
		}
	case ErrNotFound:
		res, err := r.db.ExecContext(ctx,
			"INSERT INTO about (content_uz, content_ru, content_en, is_active) VALUES (?,?,?,1)",
			a.Content.Uz, a.Content.Ru, a.Content.En)
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

// SetCertificate stores the uploaded certificate document path.
func (r *AboutRepo) SetCertificate(ctx context.Context, id uint64, path string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE about SET certificate_pdf_path=? WHERE id=?", path, id)
	return err
}

// Structure mirrors the 'structure' table, another singleton content page.
type Structure struct {
	ID        uint64    `json:"id"`
	Content   i18n.Text `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StructureRepo struct{ db *sql.DB }

func NewStructureRepo(db *sql.DB) *StructureRepo { return &StructureRepo{db: db} }

// GetActive returns the active structure row.
func (r *StructureRepo) GetActive(ctx context.Context) (Structure, error) {
	var s Structure
	err := r.db.QueryRowContext(ctx,
		`SELECT id, content_uz, content_ru, content_en, is_active, created_at, updated_at
		 FROM structure WHERE is_active=1 LIMIT 1`).
		Scan(&s.ID, &s.Content.Uz, &s.Content.Ru, &s.Content.En,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	return s, err
}

// Upsert replaces the singleton structure page.
func (r *StructureRepo) Upsert(ctx context.Context, s *Structure) error {
	existing, err := r.GetActive(ctx)
	switch err {
	case nil:
		s.ID = existing.ID
		if _, err := r.db.ExecContext(ctx,
			"UPDATE structure SET content_uz=?, content_ru=?, content_en=? WHERE id=?",
			s.Content.Uz, s.Content.Ru, s.Content.En, s.ID); err != nil {
			return err
		}
	case ErrNotFound:
		res, err := r.db.ExecContext(ctx,
			"INSERT INTO structure (content_uz, content_ru, content_en, is_active) VALUES (?,?,?,1)",
			s.Content.Uz, s.Content.Ru, s.Content.En)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
	default:
		return err
	}
	got, err := r.GetActive(ctx)
	if err != nil {
		return err
	}
	*s = got
	return nil
}

// Management mirrors the 'management' table: institute leadership entries
// shown ordered by display_order.
type Management struct {
	ID            uint64    `json:"id"`
	FullName      i18n.Text `json:"full_name"`
	Position      i18n.Text `json:"position"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	ReceptionDays i18n.Text `json:"reception_days"`
	Bio           i18n.Text `json:"bio"`
	PhotoPath     string    `json:"photo_path,omitempty"`
	DisplayOrder  int       `json:"display_order"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ManagementRepo struct{ db *sql.DB }

func NewManagementRepo(db *sql.DB) *ManagementRepo { return &ManagementRepo{db: db} }

const managementColumns = `id, full_name_uz, full_name_ru, full_name_en,
	position_uz, position_ru, position_en,
	COALESCE(phone,''), COALESCE(email,''),
	COALESCE(reception_days_uz,''), COALESCE(reception_days_ru,''), COALESCE(reception_days_en,''),
	COALESCE(bio_uz,''), COALESCE(bio_ru,''), COALESCE(bio_en,''),
	COALESCE(photo_path,''), display_order, is_active, created_at, updated_at`

func (m *Management) scan(s interface{ Scan(...any) error }) error {
	return s.Scan(&m.ID, &m.FullName.Uz, &m.FullName.Ru, &m.FullName.En,
		&m.Position.Uz, &m.Position.Ru, &m.Position.En,
		&m.Phone, &m.Email,
		&m.ReceptionDays.Uz, &m.ReceptionDays.Ru, &m.ReceptionDays.En,
		&m.Bio.Uz, &m.Bio.Ru, &m.Bio.En,
		&m.PhotoPath, &m.DisplayOrder, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
}

// List returns active management entries in display order.
func (r *ManagementRepo) List(ctx context.Context, skip, limit int) ([]Management, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+managementColumns+" FROM management WHERE is_active=1 ORDER BY display_order, id LIMIT ? OFFSET ?",
		limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Management
	for rows.Next() {
		var m Management
		if err := m.scan(rows); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Get fetches one active management entry.
func (r *ManagementRepo) Get(ctx context.Context, id uint64) (Management, error) {
	var m Management
	err := m.scan(r.db.QueryRowContext(ctx,
		"SELECT "+managementColumns+" FROM management WHERE id=? AND is_active=1 LIMIT 1", id))
	if err == sql.ErrNoRows {
		return m, ErrNotFound
	}
	return m, err
}

// Create inserts a management entry.
func (r *ManagementRepo) Create(ctx context.Context, m *Management) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO management (full_name_uz, full_name_ru, full_name_en,
		 position_uz, position_ru, position_en, phone, email,
		 reception_days_uz, reception_days_ru, reception_days_en,
		 bio_uz, bio_ru, bio_en, photo_path, display_order, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,1)`,
		m.FullName.Uz, m.FullName.Ru, m.FullName.En,
		m.Position.Uz, m.Position.Ru, m.Position.En,
		nullable(m.Phone), nullable(m.Email),
		nullable(m.ReceptionDays.Uz), nullable(m.ReceptionDays.Ru), nullable(m.ReceptionDays.En),
		nullable(m.Bio.Uz), nullable(m.Bio.Ru), nullable(m.Bio.En),
		nullable(m.PhotoPath), m.DisplayOrder)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return m.scan(r.db.QueryRowContext(ctx,
		"SELECT "+managementColumns+" FROM management WHERE id=?", m.ID))
}

// Update persists the mutable fields of m.
func (r *ManagementRepo) Update(ctx context.Context, m *Management) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE management SET full_name_uz=?, full_name_ru=?, full_name_en=?,
		 position_uz=?, position_ru=?, position_en=?, phone=?, email=?,
		 reception_days_uz=?, reception_days_ru=?, reception_days_en=?,
		 bio_uz=?, bio_ru=?, bio_en=?, photo_path=?, display_order=?, is_active=? WHERE id=?`,
		m.FullName.Uz, m.FullName.Ru, m.FullName.En,
		m.Position.Uz, m.Position.Ru, m.Position.En,
		nullable(m.Phone), nullable(m.Email),
		nullable(m.ReceptionDays.Uz), nullable(m.ReceptionDays.Ru), nullable(m.ReceptionDays.En),
		nullable(m.Bio.Uz), nullable(m.Bio.Ru), nullable(m.Bio.En),
		nullable(m.PhotoPath), m.DisplayOrder, m.IsActive, m.ID)
	return err
}

// SetPhoto stores an uploaded portrait path.
func (r *ManagementRepo) SetPhoto(ctx context.Context, id uint64, path string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE management SET photo_path=? WHERE id=?", path, id)
	return err
}

// StructuralDivision mirrors the 'structural_divisions' table: department
// heads with their department names.
type StructuralDivision struct {
	ID           uint64    `json:"id"`
	FullName     i18n.Text `json:"full_name"`
	Position     i18n.Text `json:"position"`
	Department   i18n.Text `json:"department"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Bio          i18n.Text `json:"bio"`
	PhotoPath    string    `json:"photo_path,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type DivisionRepo struct{ db *sql.DB }

func NewDivisionRepo(db *sql.DB) *DivisionRepo { return &DivisionRepo{db: db} }

const divisionColumns = `id, full_name_uz, full_name_ru, full_name_en,
	position_uz, position_ru, position_en,
	department_uz, department_ru, department_en,
	COALESCE(phone,''), COALESCE(email,''),
	COALESCE(bio_uz,''), COALESCE(bio_ru,''), COALESCE(bio_en,''),
	COALESCE(photo_path,''), display_order, is_active, created_at, updated_at`

func (d *StructuralDivision) scan(s interface{ Scan(...any) error }) error {
	return s.Scan(&d.ID, &d.FullName.Uz, &d.FullName.Ru, &d.FullName.En,
		&d.Position.Uz, &d.Position.Ru, &d.Position.En,
		&d.Department.Uz, &d.Department.Ru, &d.Department.En,
		&d.Phone, &d.Email,
		&d.Bio.Uz, &d.Bio.Ru, &d.Bio.En,
		&d.PhotoPath, &d.DisplayOrder, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
}

// List returns active divisions in display order, optionally filtered by a
// substring search against the department name in the active language.
func (r *DivisionRepo) List(ctx context.Context, skip, limit int, search, lang string) ([]StructuralDivision, error) {
	q := "SELECT " + divisionColumns + " FROM structural_divisions WHERE is_active=1"
	args := []any{}
	if search != "" {
		q += " AND (" + searchColumn("department", lang) + " LIKE ? OR " + searchColumn("full_name", lang) + " LIKE ?)"
		args = append(args, like(search), like(search))
	}
	q += " ORDER BY display_order, id LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StructuralDivision
	for rows.Next() {
		var d StructuralDivision
		if err := d.scan(rows); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create inserts a structural division entry.
func (r *DivisionRepo) Create(ctx context.Context, d *StructuralDivision) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO structural_divisions (full_name_uz, full_name_ru, full_name_en,
		 position_uz, position_ru, position_en,
		 department_uz, department_ru, department_en, phone, email,
		 bio_uz, bio_ru, bio_en, photo_path, display_order, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,1)`,
		d.FullName.Uz, d.FullName.Ru, d.FullName.En,
		d.Position.Uz, d.Position.Ru, d.Position.En,
		d.Department.Uz, d.Department.Ru, d.Department.En,
		nullable(d.Phone), nullable(d.Email),
		nullable(d.Bio.Uz), nullable(d.Bio.Ru), nullable(d.Bio.En),
		nullable(d.PhotoPath), d.DisplayOrder)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return d.scan(r.db.QueryRowContext(ctx,
		"SELECT "+divisionColumns+" FROM structural_divisions WHERE id=?", d.ID))
}

// Get fetches one division regardless of active flag.
func (r *DivisionRepo) Get(ctx context.Context, id uint64) (StructuralDivision, error) {
	var d StructuralDivision
	err := d.scan(r.db.QueryRowContext(ctx,
		"SELECT "+divisionColumns+" FROM structural_divisions WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// Update persists the mutable fields of d.
func (r *DivisionRepo) Update(ctx context.Context, d *StructuralDivision) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE structural_divisions SET full_name_uz=?, full_name_ru=?, full_name_en=?,
		 position_uz=?, position_ru=?, position_en=?,
		 department_uz=?, department_ru=?, department_en=?, phone=?, email=?,
		 bio_uz=?, bio_ru=?, bio_en=?, display_order=?, is_active=? WHERE id=?`,
		d.FullName.Uz, d.FullName.Ru, d.FullName.En,
		d.Position.Uz, d.Position.Ru, d.Position.En,
		d.Department.Uz, d.Department.Ru, d.Department.En,
		nullable(d.Phone), nullable(d.Email),
		nullable(d.Bio.Uz), nullable(d.Bio.Ru), nullable(d.Bio.En),
		d.DisplayOrder, d.IsActive, d.ID)
	return err
}

// SetPhoto stores the path of an uploaded portrait.
func (r *DivisionRepo) SetPhoto(ctx context.Context, id uint64, path string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE structural_divisions SET photo_path=? WHERE id=?", path, id)
	return err
}

// Vacancy mirrors the 'vacancies' table.
type Vacancy struct {
	ID           uint64       `json:"id"`
	Position     i18n.Text    `json:"position"`
	Department   i18n.Text    `json:"department"`
	Requirements i18n.Text    `json:"requirements"`
	Status       i18n.Text    `json:"vacancy_status"`
	SalaryRange  string       `json:"salary_range,omitempty"`
	Deadline     sql.NullTime `json:"-"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type VacancyRepo struct{ db *sql.DB }

func NewVacancyRepo(db *sql.DB) *VacancyRepo { return &VacancyRepo{db: db} }

const vacancyColumns = `id, position_uz, position_ru, position_en,
	department_uz, department_ru, department_en,
	requirements_uz, requirements_ru, requirements_en,
	vacancy_status_uz, vacancy_status_ru, vacancy_status_en,
	COALESCE(salary_range,''), deadline, is_active, created_at, updated_at`

func (v *Vacancy) scan(s interface{ Scan(...any) error }) error {
	return s.Scan(&v.ID, &v.Position.Uz, &v.Position.Ru, &v.Position.En,
		&v.Department.Uz, &v.Department.Ru, &v.Department.En,
		&v.Requirements.Uz, &v.Requirements.Ru, &v.Requirements.En,
		&v.Status.Uz, &v.Status.Ru, &v.Status.En,
		&v.SalaryRange, &v.Deadline, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
}

// List returns active vacancies, newest first, optionally filtered by a
// substring search against position or department in the active language.
func (r *VacancyRepo) List(ctx context.Context, skip, limit int, search, lang string) ([]Vacancy, error) {
	q := "SELECT " + vacancyColumns + " FROM vacancies WHERE is_active=1"
	args := []any{}
	if search != "" {
		q += " AND (" + searchColumn("position", lang) + " LIKE ? OR " + searchColumn("department", lang) + " LIKE ?)"
		args = append(args, like(search), like(search))
	}
	q += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Vacancy
	for rows.Next() {
		var v Vacancy
		if err := v.scan(rows); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Get fetches one vacancy regardless of active flag, for updates.
func (r *VacancyRepo) Get(ctx context.Context, id uint64) (Vacancy, error) {
	var v Vacancy
	err := v.scan(r.db.QueryRowContext(ctx,
		"SELECT "+vacancyColumns+" FROM vacancies WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return v, ErrNotFound
	}
	return v, err
}

// Create inserts a vacancy.
func (r *VacancyRepo) Create(ctx context.Context, v *Vacancy) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO vacancies (position_uz, position_ru, position_en,
		 department_uz, department_ru, department_en,
		 requirements_uz, requirements_ru, requirements_en,
		 vacancy_status_uz, vacancy_status_ru, vacancy_status_en,
		 salary_range, deadline, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,1)`,
		v.Position.Uz, v.Position.Ru, v.Position.En,
		v.Department.Uz, v.Department.Ru, v.Department.En,
		v.Requirements.Uz, v.Requirements.Ru, v.Requirements.En,
		v.Status.Uz, v.Status.Ru, v.Status.En,
		nullable(v.SalaryRange), nullTime(v.Deadline))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	got, err := r.Get(ctx, v.ID)
	if err != nil {
		return err
	}
	*v = got
	return nil
}

// Update persists the mutable fields of v.
func (r *VacancyRepo) Update(ctx context.Context, v *Vacancy) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE vacancies SET position_uz=?, position_ru=?, position_en=?,
		 department_uz=?, department_ru=?, department_en=?,
		 requirements_uz=?, requirements_ru=?, requirements_en=?,
		 vacancy_status_uz=?, vacancy_status_ru=?, vacancy_status_en=?,
		 salary_range=?, deadline=?, is_active=? WHERE id=?`,
		v.Position.Uz, v.Position.Ru, v.Position.En,
		v.Department.Uz, v.Department.Ru, v.Department.En,
		v.Requirements.Uz, v.Requirements.Ru, v.Requirements.En,
		v.Status.Uz, v.Status.Ru, v.Status.En,
		nullable(v.SalaryRange), nullTime(v.Deadline), v.IsActive, v.ID)
	return err
}

// nullTime maps an unset NullTime to SQL NULL.
func nullTime(t sql.NullTime) any {
	if !t.Valid {
		return nil
	}
	return t.Time
}
