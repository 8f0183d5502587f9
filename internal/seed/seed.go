package seed

import (
	"database/sql"
	"fmt"
)

const (
	defaultMaterialName = "Cotton fabric"
	defaultMaterialUnit = "m"
)

var starterRoadmapFeatures = []struct {
	title       string
	description string
}{
	{"Bulk price updates", "Recalculate every product after a material price change."},
	{"CSV import", "Import materials and products from a spreadsheet."},
	{"Cost history", "Keep a history of cost snapshots per product."},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way: the settings
// singleton, one starter inventory material, and the initial roadmap
// entries.
func Run(database *sql.DB) (Stats, error) {
	tx, err := database.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureSettings(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureStarterMaterial(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureRoadmapFeatures(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSettings(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM settings WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check settings existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO settings (id, currency, default_unit, tax_percent, labor_hourly_rate)
		VALUES (1, ?, ?, ?, ?)
	`, "USD", "unit", 0, 15); err != nil {
		return fmt.Errorf("insert settings singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureStarterMaterial(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM materials WHERE name = ? LIMIT 1)`, defaultMaterialName).Scan(&exists); err != nil {
		return fmt.Errorf("check starter material existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO materials (name, unit, price_per_unit, stock_level, reorder_point, active)
		VALUES (?, ?, ?, ?, ?, TRUE)
	`, defaultMaterialName, defaultMaterialUnit, 0, 0, 0); err != nil {
		return fmt.Errorf("insert starter material: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureRoadmapFeatures(tx *sql.Tx, stats *Stats) error {
	for _, feature := range starterRoadmapFeatures {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM roadmap_features WHERE title = ? LIMIT 1)`, feature.title).Scan(&exists); err != nil {
			return fmt.Errorf("check roadmap feature existence: %w", err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO roadmap_features (title, description, status, votes)
			VALUES (?, ?, 'planned', 0)
		`, feature.title, feature.description); err != nil {
			return fmt.Errorf("insert roadmap feature: %w", err)
		}
		stats.Inserts++
	}
	return nil
}
