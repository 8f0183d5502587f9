package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/priceme/priceme/internal/pricing"
)

// Stock statuses derived from stock level vs reorder point.
const (
	stockStatusOut = "out_of_stock"
	stockStatusLow = "low_stock"
	stockStatusIn  = "in_stock"
)

type material struct {
	ID           int64
	Name         string
	Unit         string
	PricePerUnit float64
	StockLevel   float64
	ReorderPoint float64
	Active       bool
}

// StockStatus reports whether the material needs reordering.
func (m material) StockStatus() string {
	switch {
	case m.StockLevel <= 0:
		return stockStatusOut
	case m.StockLevel <= m.ReorderPoint:
		return stockStatusLow
	default:
		return stockStatusIn
	}
}

type materialsViewData struct {
	baseViewData
	Materials []material
}

func (s *server) handleMaterialsList(w http.ResponseWriter, r *http.Request) {
	materials, err := s.listMaterials()
	if err != nil {
		http.Error(w, "failed to load materials", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "materials.html", materialsViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Materials: materials,
	})
}

func (s *server) handleMaterialCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	m, err := parseMaterialForm(r)
	if err != nil {
		http.Redirect(w, r, "/materials?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO materials (name, unit, price_per_unit, stock_level, reorder_point, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.Name, m.Unit, m.PricePerUnit, m.StockLevel, m.ReorderPoint, m.Active)
	if err != nil {
		http.Error(w, "failed to create material", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/materials?success="+url.QueryEscape("Material created"), http.StatusSeeOther)
}

func (s *server) handleMaterialUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid material id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	m, err := parseMaterialForm(r)
	if err != nil {
		http.Redirect(w, r, "/materials?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	result, err := s.db.Exec(`
		UPDATE materials
		SET
			name = ?,
			unit = ?,
			price_per_unit = ?,
			stock_level = ?,
			reorder_point = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, m.Name, m.Unit, m.PricePerUnit, m.StockLevel, m.ReorderPoint, m.Active, id)
	if err != nil {
		http.Error(w, "failed to update material", http.StatusInternalServerError)
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		http.Error(w, "failed to update material", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.NotFound(w, r)
		return
	}

	// Percentage-of-stock product lines read this material's stock, so
	// their snapshots are stale now.
	if err := s.recomputeProductsUsingMaterial(id); err != nil {
		http.Error(w, "failed to recompute linked products", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/materials?success="+url.QueryEscape("Material updated"), http.StatusSeeOther)
}

func (s *server) handleMaterialStockAdjust(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid material id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	delta := pricing.ParseNumericOrZero(r.FormValue("delta"))
	if err := s.adjustStock(id, delta); err != nil {
		http.Redirect(w, r, "/materials?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	if err := s.recomputeProductsUsingMaterial(id); err != nil {
		http.Error(w, "failed to recompute linked products", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/materials?success="+url.QueryEscape("Stock updated"), http.StatusSeeOther)
}

func parseMaterialForm(r *http.Request) (material, error) {
	m := material{
		Name:   strings.TrimSpace(r.FormValue("name")),
		Unit:   strings.TrimSpace(r.FormValue("unit")),
		Active: r.FormValue("active") != "0",
	}

	if m.Name == "" {
		return m, fmt.Errorf("name is required")
	}

	var err error
	if m.PricePerUnit, err = parseNonNegativeFloat(r.FormValue("price_per_unit"), "price_per_unit"); err != nil {
		return m, err
	}
	if m.StockLevel, err = parseNonNegativeFloat(r.FormValue("stock_level"), "stock_level"); err != nil {
		return m, err
	}
	if m.ReorderPoint, err = parseNonNegativeFloat(r.FormValue("reorder_point"), "reorder_point"); err != nil {
		return m, err
	}

	return m, nil
}

// adjustStock applies a signed delta to the stock level, clamping at 0.
func (s *server) adjustStock(id int64, delta float64) error {
	result, err := s.db.Exec(`
		UPDATE materials
		SET stock_level = MAX(0, stock_level + ?), updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, delta, id)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("material not found")
	}
	return nil
}

func (s *server) listMaterials() ([]material, error) {
	rows, err := s.db.Query(`
		SELECT id, name, unit, price_per_unit, stock_level, reorder_point, active
		FROM materials
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]material, 0)
	for rows.Next() {
		var m material
		if err := rows.Scan(&m.ID, &m.Name, &m.Unit, &m.PricePerUnit, &m.StockLevel, &m.ReorderPoint, &m.Active); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return materials, nil
}
