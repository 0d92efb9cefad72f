package db

import (
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// MigrateFS runs the embedded goose migrations against the database.
// Migrations use a plain database/sql handle via the pgx stdlib driver;
// the pgxpool used by the repositories stays untouched.
func MigrateFS(databaseURL string, migrationsFS fs.FS, dir string) error {
	handle, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("migrate: open: %w", err)
	}
	defer handle.Close()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := goose.Up(handle, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
