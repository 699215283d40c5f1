package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tmsiti/institute-api/internal/i18n"
)

// This file covers the regulatory-document tables: laws, urban norms,
// standards, building regulations, smeta resource norms and references.
// They share the localized-name pattern and differ only in their code
// columns, so they live together as one content domain.

// Law mirrors the 'laws' table.
type Law struct {
	ID            uint64    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	Name          i18n.Text `json:"name"`
	AdoptionDate  time.Time `json:"adoption_date"`
	EffectiveDate time.Time `json:"effective_date"`
	Authority     i18n.Text `json:"authority"`
	LexLink       string    `json:"lex_uz_link,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type LawRepo struct{ db *sql.DB }

func NewLawRepo(db *sql.DB) *LawRepo { return &LawRepo{db: db} }

const lawColumns = `id, order_number, name_uz, name_ru, name_en,
	adoption_date, effective_date, authority_uz, authority_ru, authority_en,
	COALESCE(lex_uz_link,''), is_active, created_at, updated_at`

func (l *Law) scan(s interface{ Scan(...any) error }) error {
	return s.Scan(&l.ID, &l.OrderNumber, &l.Name.Uz, &l.Name.Ru, &l.Name.En,
		&l.AdoptionDate, &l.EffectiveDate, &l.Authority.Uz, &l.Authority.Ru, &l.Authority.En,
		&l.LexLink, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
}

// List returns active laws ordered by adoption date, newest first.
func (r *LawRepo) List(ctx context.Context, skip, limit int, search, lang string) ([]Law, error) {
	q := "SELECT " + lawColumns + " FROM laws WHERE is_active=1"
	args := []any{}
	if search != "" {
		q += " AND (" + searchColumn("name", lang) + " LIKE ? OR order_number LIKE ?)"
		args = append(args, like(search), like(search))
	}
	q += " ORDER BY adoption_date DESC LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Law
	for rows.Next() {
		var l Law
		if err := l.scan(rows); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Get fetches one active law.
func (r *LawRepo) Get(ctx context.Context, id uint64) (Law, error) {
	var l Law
	err := l.scan(r.db.QueryRowContext(ctx,
		"SELECT "+lawColumns+" FROM laws WHERE id=? AND is_active=1 LIMIT 1", id))
	if err == sql.ErrNoRows {
		return l, ErrNotFound
	}
	return l, err
}

// Create inserts a law and re-reads the generated fields.
func (r *LawRepo) Create(ctx context.Context, l *Law) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO laws (order_number, name_uz, name_ru, name_en,
		 adoption_date, effective_date, authority_uz, authority_ru, authority_en,
		 lex_uz_link, is_active) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		l.OrderNumber, l.Name.Uz, l.Name.Ru, l.Name.En,
		l.AdoptionDate, l.EffectiveDate, l.Authority.Uz, l.Authority.Ru, l.Authority.En,
		nullable(l.LexLink), true)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return l.scan(r.db.QueryRowContext(ctx, "SELECT "+lawColumns+" FROM laws WHERE id=?", l.ID))
}

// Update persists the mutable fields of l.
func (r *LawRepo) Update(ctx context.Context, l *Law) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE laws SET order_number=?, name_uz=?, name_ru=?, name_en=?,
		 adoption_date=?, effective_date=?, authority_uz=?, authority_ru=?, authority_en=?,
		 lex_uz_link=?, is_active=? WHERE id=?`,
		l.OrderNumber, l.Name.Uz, l.Name.Ru, l.Name.En,
		l.AdoptionDate, l.EffectiveDate, l.Authority.Uz, l.Authority.Ru, l.Authority.En,
		nullable(l.LexLink), l.IsActive, l.ID)
	return err
}

// Delete removes a law row.
func (r *LawRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "laws", id)
}

// UrbanNorm mirrors the 'urban_norms' table.  document_code is unique.
type UrbanNorm struct {
	ID           uint64    `json:"id"`
	DocumentCode string    `json:"document_code"`
	Name         i18n.Text `json:"name"`
	LexLink      string    `json:"lex_uz_link,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UrbanNormRepo struct{ db *sql.DB }

func NewUrbanNormRepo(db *sql.DB) *UrbanNormRepo { return &UrbanNormRepo{db: db} }

const urbanNormColumns = `id, document_code, name_uz, name_ru, name_en,
	COALESCE(lex_uz_link,''), is_active, created_at, updated_at`

// List returns active urban norms ordered by document code.
func (r *UrbanNormRepo) List(ctx context.Context, skip, limit int, search, lang string) ([]UrbanNorm, error) {
	q := "SELECT " + urbanNormColumns + " FROM urban_norms WHERE is_active=1"
	args := []any{}
	if search != "" {
		q += " AND (" + searchColumn("name", lang) + " LIKE ? OR document_code LIKE ?)"
		args = append(args, like(search), like(search))
	}
	q += " ORDER BY document_code LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []UrbanNorm
	for rows.Next() {
		var u UrbanNorm
		if err := rows.Scan(&u.ID, &u.DocumentCode, &u.Name.Uz, &u.Name.Ru, &u.Name.En,
			&u.LexLink, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Create inserts an urban norm; a duplicate document code maps to
// ErrCodeExists.
func (r *UrbanNormRepo) Create(ctx context.Context, u *UrbanNorm) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO urban_norms (document_code, name_uz, name_ru, name_en, lex_uz_link, is_active)
		 VALUES (?,?,?,?,?,?)`,
		u.DocumentCode, u.Name.Uz, u.Name.Ru, u.Name.En, nullable(u.LexLink), true)
	if err != nil {
		if isDuplicate(err) {
			return ErrCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return r.db.QueryRowContext(ctx, "SELECT "+urbanNormColumns+" FROM urban_norms WHERE id=?", u.ID).
		Scan(&u.ID, &u.DocumentCode, &u.Name.Uz, &u.Name.Ru, &u.Name.En,
			&u.LexLink, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

// Get fetches one urban norm regardless of active flag.
func (r *UrbanNormRepo) Get(ctx context.Context, id uint64) (UrbanNorm, error) {
	var u UrbanNorm
	err := r.db.QueryRowContext(ctx,
		"SELECT "+urbanNormColumns+" FROM urban_norms WHERE id=? LIMIT 1", id).
		Scan(&u.ID, &u.DocumentCode, &u.Name.Uz, &u.Name.Ru, &u.Name.En,
			&u.LexLink, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// Update persists the mutable fields of u.
func (r *UrbanNormRepo) Update(ctx context.Context, u *UrbanNorm) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE urban_norms SET document_code=?, name_uz=?, name_ru=?, name_en=?,
		 lex_uz_link=?, is_active=? WHERE id=?`,
		u.DocumentCode, u.Name.Uz, u.Name.Ru, u.Name.En,
		nullable(u.LexLink), u.IsActive, u.ID)
	if err != nil && isDuplicate(err) {
		return ErrCodeExists
	}
	return err
}

// Delete removes an urban norm row.
func (r *UrbanNormRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "urban_norms", id)
}

// Standard mirrors the 'standards' table.
type Standard struct {
	ID        uint64    `json:"id"`
	Name      i18n.Text `json:"name"`
	PdfPath   string    `json:"pdf_path,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StandardRepo struct{ db *sql.DB }

func NewStandardRepo(db *sql.DB) *StandardRepo { return &StandardRepo{db: db} }

const standardColumns = `id, name_uz, name_ru, name_en, COALESCE(pdf_path,''),
	is_active, created_at, updated_at`

// List returns active standards ordered by id.
func (r *StandardRepo) List(ctx context.Context, skip, limit int, search, lang string) ([]Standard, error) {
	q := "SELECT " + standardColumns + " FROM standards WHERE is_active=1"
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
	var out []Standard
	for rows.Next() {
		var s Standard
		if err := rows.Scan(&s.ID, &s.Name.Uz, &s.Name.Ru, &s.Name.En, &s.PdfPath,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get fetches one standard regardless of active flag, for pdf uploads.
func (r *StandardRepo) Get(ctx context.Context, id uint64) (Standard, error) {
	var s Standard
	err := r.db.QueryRowContext(ctx,
		"SELECT "+standardColumns+" FROM standards WHERE id=? LIMIT 1", id).
		Scan(&s.ID, &s.Name.Uz, &s.Name.Ru, &s.Name.En, &s.PdfPath,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	return s, err
}

// Create inserts a standard.
func (r *StandardRepo) Create(ctx context.Context, s *Standard) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO standards (name_uz, name_ru, name_en, pdf_path, is_active) VALUES (?,?,?,?,?)",
		s.Name.Uz, s.Name.Ru, s.Name.En, nullable(s.PdfPath), true)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	got, err := r.Get(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = got
	return nil
}

// Update persists the mutable fields of s.
func (r *StandardRepo) Update(ctx context.Context, s *Standard) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE standards SET name_uz=?, name_ru=?, name_en=?, is_active=? WHERE id=?",
		s.Name.Uz, s.Name.Ru, s.Name.En, s.IsActive, s.ID)
	return err
}

// Delete removes a standard row.
func (r *StandardRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "standards", id)
}

// SetPdf stores the path of an uploaded document.
func (r *StandardRepo) SetPdf(ctx context.Context, id uint64, path string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE standards SET pdf_path=? WHERE id=?", path, id)
	return err
}

// BuildingRegulation mirrors the 'building_regulations' table.
type BuildingRegulation struct {
	ID             uint64    `json:"id"`
	DocumentNumber string    `json:"document_number"`
	Designation    string    `json:"designation"`
	Name           i18n.Text `json:"name"`
	PdfPath        string    `json:"pdf_path,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BuildingRegulationRepo struct{ db *sql.DB }

func NewBuildingRegulationRepo(db *sql.DB) *BuildingRegulationRepo {
	return &BuildingRegulationRepo{db: db}
}

const buildingRegColumns = `id, document_number, designation, name_uz, name_ru, name_en,
	COALESCE(pdf_path,''), is_active, created_at, updated_at`

// List returns active building regulations ordered by document number.
func (r *BuildingRegulationRepo) List(ctx context.Context, skip, limit int, search, lang string) ([]BuildingRegulation, error) {
	q := "SELECT " + buildingRegColumns + " FROM building_regulations WHERE is_active=1"
	args := []any{}
	if search != "" {
		q += " AND (" + searchColumn("name", lang) + " LIKE ? OR document_number LIKE ? OR designation LIKE ?)"
		args = append(args, like(search), like(search), like(search))
	}
	q += " ORDER BY document_number LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BuildingRegulation
	for rows.Next() {
		var b BuildingRegulation
		if err := rows.Scan(&b.ID, &b.DocumentNumber, &b.Designation,
			&b.Name.Uz, &b.Name.Ru, &b.Name.En, &b.PdfPath,
			&b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create inserts a building regulation.
func (r *BuildingRegulationRepo) Create(ctx context.Context, b *BuildingRegulation) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO building_regulations (document_number, designation, name_uz, name_ru, name_en, pdf_path, is_active)
		 VALUES (?,?,?,?,?,?,?)`,
		b.DocumentNumber, b.Designation, b.Name.Uz, b.Name.Ru, b.Name.En, nullable(b.PdfPath), true)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT "+buildingRegColumns+" FROM building_regulations WHERE id=?", b.ID).
		Scan(&b.ID, &b.DocumentNumber, &b.Designation,
			&b.Name.Uz, &b.Name.Ru, &b.Name.En, &b.PdfPath,
			&b.IsActive, &b.CreatedAt, &b.UpdatedAt)
}

// Get fetches one building regulation regardless of active flag.
func (r *BuildingRegulationRepo) Get(ctx context.Context, id uint64) (BuildingRegulation, error) {
	var b BuildingRegulation
	err := r.db.QueryRowContext(ctx,
		"SELECT "+buildingRegColumns+" FROM building_regulations WHERE id=? LIMIT 1", id).
		Scan(&b.ID, &b.DocumentNumber, &b.Designation,
			&b.Name.Uz, &b.Name.Ru, &b.Name.En, &b.PdfPath,
			&b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return b, ErrNotFound
	}
	return b, err
}

// Update persists the mutable fields of b.
func (r *BuildingRegulationRepo) Update(ctx context.Context, b *BuildingRegulation) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE building_regulations SET document_number=?, designation=?,
		 name_uz=?, name_ru=?, name_en=?, is_active=? WHERE id=?`,
		b.DocumentNumber, b.Designation, b.Name.Uz, b.Name.Ru, b.Name.En, b.IsActive, b.ID)
	return err
}

// Delete removes a building regulation row.
func (r *BuildingRegulationRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "building_regulations", id)
}

// SetPdf stores the path of an uploaded document.
func (r *BuildingRegulationRepo) SetPdf(ctx context.Context, id uint64, path string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE building_regulations SET pdf_path=? WHERE id=?", path, id)
	return err
}

// SmetaResourceNorm mirrors the 'smeta_resource_norms' table.
type SmetaResourceNorm struct {
	ID             uint64    `json:"id"`
	DocumentNumber string    `json:"document_number"`
	ShnqNumber     string    `json:"shnq_number"`
	ShnqName       i18n.Text `json:"shnq_name"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SmetaNormRepo struct{ db *sql.DB }

func NewSmetaNormRepo(db *sql.DB) *SmetaNormRepo { return &SmetaNormRepo{db: db} }

const smetaNormColumns = `id, document_number, shnq_number, shnq_name_uz, shnq_name_ru, shnq_name_en,
	is_active, created_at, updated_at`

// List returns active smeta resource norms ordered by document number.
func (r *SmetaNormRepo) List(ctx context.Context, skip, limit int, search, lang string) ([]SmetaResourceNorm, error) {
	q := "SELECT " + smetaNormColumns + " FROM smeta_resource_norms WHERE is_active=1"
	args := []any{}
	if search != "" {
		q += " AND (" + searchColumn("shnq_name", lang) + " LIKE ? OR shnq_number LIKE ?)"
		args = append(args, like(search), like(search))
	}
	q += " ORDER BY document_number LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SmetaResourceNorm
	for rows.Next() {
		var s SmetaResourceNorm
		if err := rows.Scan(&s.ID, &s.DocumentNumber, &s.ShnqNumber,
			&s.ShnqName.Uz, &s.ShnqName.Ru, &s.ShnqName.En,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts a smeta resource norm.
func (r *SmetaNormRepo) Create(ctx context.Context, s *SmetaResourceNorm) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO smeta_resource_norms (document_number, shnq_number, shnq_name_uz, shnq_name_ru, shnq_name_en, is_active)
		 VALUES (?,?,?,?,?,?)`,
		s.DocumentNumber, s.ShnqNumber, s.ShnqName.Uz, s.ShnqName.Ru, s.ShnqName.En, true)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT "+smetaNormColumns+" FROM smeta_resource_norms WHERE id=?", s.ID).
		Scan(&s.ID, &s.DocumentNumber, &s.ShnqNumber,
			&s.ShnqName.Uz, &s.ShnqName.Ru, &s.ShnqName.En,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

// Get fetches one smeta resource norm regardless of active flag.
func (r *SmetaNormRepo) Get(ctx context.Context, id uint64) (SmetaResourceNorm, error) {
	var s SmetaResourceNorm
	err := r.db.QueryRowContext(ctx,
		"SELECT "+smetaNormColumns+" FROM smeta_resource_norms WHERE id=? LIMIT 1", id).
		Scan(&s.ID, &s.DocumentNumber, &s.ShnqNumber,
			&s.ShnqName.Uz, &s.ShnqName.Ru, &s.ShnqName.En,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	return s, err
}

// Update persists the mutable fields of s.
func (r *SmetaNormRepo) Update(ctx context.Context, s *SmetaResourceNorm) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE smeta_resource_norms SET document_number=?, shnq_number=?,
		 shnq_name_uz=?, shnq_name_ru=?, shnq_name_en=?, is_active=? WHERE id=?`,
		s.DocumentNumber, s.ShnqNumber, s.ShnqName.Uz, s.ShnqName.Ru, s.ShnqName.En, s.IsActive, s.ID)
	return err
}

// Delete removes a smeta resource norm row.
func (r *SmetaNormRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "smeta_resource_norms", id)
}

// Reference mirrors the 'references' table.
type Reference struct {
	ID              uint64    `json:"id"`
	ReferenceNumber string    `json:"reference_number"`
	Name            i18n.Text `json:"name"`
	PdfPath         string    `json:"pdf_path,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ReferenceRepo struct{ db *sql.DB }

func NewReferenceRepo(db *sql.DB) *ReferenceRepo { return &ReferenceRepo{db: db} }

const referenceColumns = `id, reference_number, name_uz, name_ru, name_en,
	COALESCE(pdf_path,''), is_active, created_at, updated_at`

// List returns active references ordered by reference number.
func (r *ReferenceRepo) List(ctx context.Context, skip, limit int, search, lang string) ([]Reference, error) {
	q := "SELECT " + referenceColumns + " FROM references_tbl WHERE is_active=1"
	args := []any{}
	if search != "" {
		q += " AND (" + searchColumn("name", lang) + " LIKE ? OR reference_number LIKE ?)"
		args = append(args, like(search), like(search))
	}
	q += " ORDER BY reference_number LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Reference
	for rows.Next() {
		var f Reference
		if err := rows.Scan(&f.ID, &f.ReferenceNumber, &f.Name.Uz, &f.Name.Ru, &f.Name.En,
			&f.PdfPath, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Get fetches one reference regardless of active flag, for pdf uploads.
func (r *ReferenceRepo) Get(ctx context.Context, id uint64) (Reference, error) {
	var f Reference
	err := r.db.QueryRowContext(ctx,
		"SELECT "+referenceColumns+" FROM references_tbl WHERE id=? LIMIT 1", id).
		Scan(&f.ID, &f.ReferenceNumber, &f.Name.Uz, &f.Name.Ru, &f.Name.En,
			&f.PdfPath, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return f, ErrNotFound
	}
	return f, err
}

// Create inserts a reference.
func (r *ReferenceRepo) Create(ctx context.Context, f *Reference) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO references_tbl (reference_number, name_uz, name_ru, name_en, pdf_path, is_active)
		 VALUES (?,?,?,?,?,?)`,
		f.ReferenceNumber, f.Name.Uz, f.Name.Ru, f.Name.En, nullable(f.PdfPath), true)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	got, err := r.Get(ctx, f.ID)
	if err != nil {
		return err
	}
	*f = got
	return nil
}

// Update persists the mutable fields of f.
func (r *ReferenceRepo) Update(ctx context.Context, f *Reference) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE references_tbl SET reference_number=?, name_uz=?, name_ru=?, name_en=?,
		 is_active=? WHERE id=?`,
		f.ReferenceNumber, f.Name.Uz, f.Name.Ru, f.Name.En, f.IsActive, f.ID)
	return err
}

// Delete removes a reference row.
func (r *ReferenceRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "references_tbl", id)
}

// SetPdf stores the path of an uploaded document.
func (r *ReferenceRepo) SetPdf(ctx context.Context, id uint64, path string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE references_tbl SET pdf_path=? WHERE id=?", path, id)
	return err
}
