package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/priceme/priceme/internal/db"
	"github.com/priceme/priceme/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			// Settings singleton + starter material + 3 roadmap entries.
			if stats.Inserts != 5 {
				t.Fatalf("expected 5 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM settings WHERE id = 1`, nil, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM materials WHERE name = ?`, "Cotton fabric", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM roadmap_features`, nil, 3)

	var laborRate float64
	if err := database.QueryRow(`SELECT labor_hourly_rate FROM settings WHERE id = 1`).Scan(&laborRate); err != nil {
		t.Fatalf("query settings labor rate: %v", err)
	}
	if laborRate != 15 {
		t.Fatalf("expected default labor rate 15, got %v", laborRate)
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, arg any, expected int) {
	t.Helper()

	var count int
	var err error
	if arg == nil {
		err = database.QueryRow(query).Scan(&count)
	} else {
		err = database.QueryRow(query, arg).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
