package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/001_schema.up.sql
var schemaSQL string

var requiredTables = []string{
	"usuarios",
	"roles",
	"usuarios_roles",
	"alumnos",
	"materias",
	"notas",
}

// baseRoles are seeded so role assignment always validates against a known
// set; a typo in a role name can never mint an unknown privilege.
var baseRoles = []string{"admin", "alumno"}

func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	exists, err := db.hasAllRequiredTables(ctx)
	if err != nil {
		return fmt.Errorf("check existing tables: %w", err)
	}

	if !exists {
		slog.Info("database schema missing tables; applying initial migration")
		if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
			return fmt.Errorf("apply initial migration: %w", err)
		}

		exists, err = db.hasAllRequiredTables(ctx)
		if err != nil {
			return fmt.Errorf("re-check tables after migration: %w", err)
		}

		if !exists {
			return fmt.Errorf("schema initialization incomplete: required tables are still missing")
		}
	}

	if err := db.seedBaseRoles(ctx); err != nil {
		return fmt.Errorf("seed base roles: %w", err)
	}

	slog.Info("database schema ensured")
	return nil
}

func (db *DB) seedBaseRoles(ctx context.Context) error {
	for _, name := range baseRoles {
		if _, err := db.Pool.Exec(ctx,
			`INSERT INTO roles (nombre) VALUES ($1) ON CONFLICT (nombre) DO NOTHING`, name); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) hasAllRequiredTables(ctx context.Context) (bool, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name = ANY($1)
	`, requiredTables).Scan(&count)
	if err != nil {
		return false, err
	}

	return count == len(requiredTables), nil
}
