// Package repository contains data access logic separated from HTTP
// handlers.  This file defines sentinel error values reused across the
// repositories so handlers can map failure cases to HTTP statuses without
// inspecting driver errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ErrNotFound is returned when a row does not exist or is inactive.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when an insert or update would violate the
// unique username constraint.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when an insert or update would violate the
// unique email constraint.
var ErrEmailExists = errors.New("email already exists")

// ErrCodeExists is returned when a regulatory document's unique code or
// number collides with an existing row.
var ErrCodeExists = errors.New("document code already exists")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// deleteRow removes one row by id, mapping zero affected rows to
// ErrNotFound.  Table names are compile-time constants at every call site.
func deleteRow(ctx context.Context, db *sql.DB, table string, id uint64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
