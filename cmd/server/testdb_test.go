package main

import (
	"path/filepath"
	"testing"

	"github.com/priceme/priceme/internal/db"
	"github.com/priceme/priceme/internal/migrations"
)

// newTestServer opens a throwaway database with the real schema applied.
func newTestServer(t *testing.T) *server {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "priceme-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close()
	})

	return &server{db: database}
}

func seedMaterial(t *testing.T, srv *server, name string, pricePerUnit, stockLevel, reorderPoint float64) int64 {
	t.Helper()

	result, err := srv.db.Exec(`
		INSERT INTO materials (name, unit, price_per_unit, stock_level, reorder_point, active)
		VALUES (?, 'g', ?, ?, ?, TRUE)
	`, name, pricePerUnit, stockLevel, reorderPoint)
	if err != nil {
		t.Fatalf("seed material: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("seed material id: %v", err)
	}
	return id
}
