package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// goose speaks the mattn dialect name even with the modernc driver.
const sqliteDialect = "sqlite3"

// Up applies all pending SQL migrations found in migrationsDir.
func Up(database *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(database, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
