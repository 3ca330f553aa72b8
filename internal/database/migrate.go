package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/001_initial.up.sql
var initialMigrationSQL string

var requiredTables = []string{
	"users",
	"posts",
}

func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	exists, err := db.hasAllRequiredTables(ctx)
	if err != nil {
		return fmt.Errorf("check existing tables: %w", err)
	}
	if exists {
		return nil
	}

	slog.Info("applying initial schema")
	if _, err := db.Pool.Exec(ctx, initialMigrationSQL); err != nil {
		return fmt.Errorf("apply initial schema: %w", err)
	}

	return nil
}

func (db *DB) hasAllRequiredTables(ctx context.Context) (bool, error) {
	for _, table := range requiredTables {
		var exists bool
		err := db.Pool.QueryRow(ctx,
			`SELECT EXISTS(
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)`, table).Scan(&exists)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, nil
		}
	}
	return true, nil
}
