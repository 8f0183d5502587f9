package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/priceme/priceme/internal/pricing"
)

// Product lifecycle statuses.
const (
	statusDraft      = "draft"
	statusInProgress = "in_progress"
	statusOnSale     = "on_sale"
	statusInactive   = "inactive"
)

var allowedTransitions = map[string][]string{
	statusDraft:      {statusInProgress, statusInactive},
	statusInProgress: {statusOnSale, statusDraft, statusInactive},
	statusOnSale:     {statusInactive},
	statusInactive:   {statusDraft},
}

func canTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type productListItem struct {
	ID           int64
	Name         string
	Status       string
	BatchSize    int
	ProductCost  float64
	TargetPrice  float64
	Profit       float64
	ProfitMargin float64
	CreatedAt    string
}

// productMaterialLine pairs a pricing material line with its optional
// inventory link. MaterialID 0 means the line is ad hoc and its stock
// level stays 0 in percentage mode.
type productMaterialLine struct {
	MaterialID int64
	Line       pricing.MaterialLine
}

type productRecord struct {
	ID         int64
	Name       string
	Status     string
	BatchSize  int
	Method     pricing.Method
	Value      float64
	Materials  []productMaterialLine
	Labor      []pricing.LaborLine
	OtherCosts []pricing.OtherCostLine
	Snapshot   pricing.Summary
	CreatedAt  string
}

type productFormValues struct {
	Name       string
	BatchSize  int
	Method     pricing.Method
	Value      float64
	Materials  []productMaterialLine
	Labor      []pricing.LaborLine
	OtherCosts []pricing.OtherCostLine
}

type productsViewData struct {
	baseViewData
	Query    string
	Products []productListItem
}

type productFormViewData struct {
	baseViewData
	Product   productRecord
	Inventory []material
	Settings  appSettings
}

type productDetailViewData struct {
	baseViewData
	Product productRecord
}

func (s *server) handleProductsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	products, err := s.listProducts(query)
	if err != nil {
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "products.html", productsViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Query:    query,
		Products: products,
	})
}

func (s *server) handleProductNewForm(w http.ResponseWriter, r *http.Request) {
	inventory, err := s.listMaterials()
	if err != nil {
		http.Error(w, "failed to load materials", http.StatusInternalServerError)
		return
	}
	settings, err := s.getSettings()
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "product_form.html", productFormViewData{
		Product: productRecord{
			Status:    statusDraft,
			BatchSize: 1,
			Method:    pricing.MethodMarkup,
		},
		Inventory: inventory,
		Settings:  settings,
	})
}

func (s *server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, err := parseProductForm(r)
	if err != nil {
		http.Redirect(w, r, "/products/new?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	id, err := s.saveProduct(0, form)
	if err != nil {
		http.Error(w, "failed to create product", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/products/%d?success=%s", id, url.QueryEscape("Product created")), http.StatusSeeOther)
}

func (s *server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := s.getProduct(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "product_detail.html", productDetailViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Product: product,
	})
}

func (s *server) handleProductEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := s.getProduct(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	inventory, err := s.listMaterials()
	if err != nil {
		http.Error(w, "failed to load materials", http.StatusInternalServerError)
		return
	}
	settings, err := s.getSettings()
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "product_form.html", productFormViewData{
		Product:   product,
		Inventory: inventory,
		Settings:  settings,
	})
}

func (s *server) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, err := parseProductForm(r)
	if err != nil {
		http.Redirect(w, r, fmt.Sprintf("/products/%d?error=%s", id, url.QueryEscape(err.Error())), http.StatusSeeOther)
		return
	}

	if _, err := s.saveProduct(id, form); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to update product", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/products/%d?success=%s", id, url.QueryEscape("Product updated")), http.StatusSeeOther)
}

func (s *server) handleProductStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	to := r.FormValue("status")
	if err := s.setProductStatus(id, to); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/products/%d?error=%s", id, url.QueryEscape(err.Error())), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/products/%d?success=%s", id, url.QueryEscape("Status updated")), http.StatusSeeOther)
}

func (s *server) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	result, err := s.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		http.Error(w, "failed to delete product", http.StatusInternalServerError)
		return
	}
	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/products?success="+url.QueryEscape("Product deleted"), http.StatusSeeOther)
}

func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

// parseProductForm reads the product form. Identity fields are validated
// strictly; line-item numerics use fallback-to-zero coercion so a
// half-typed number never blocks a recalculation.
func parseProductForm(r *http.Request) (productFormValues, error) {
	form := productFormValues{
		Name: strings.TrimSpace(r.FormValue("name")),
	}

	if form.Name == "" {
		return form, fmt.Errorf("name is required")
	}

	batchSize, err := strconv.Atoi(strings.TrimSpace(r.FormValue("batch_size")))
	if err != nil || batchSize < 1 {
		return form, fmt.Errorf("batch_size must be an integer >= 1")
	}
	form.BatchSize = batchSize

	method := pricing.Method(r.FormValue("pricing_method"))
	switch method {
	case pricing.MethodMarkup, pricing.MethodPrice, pricing.MethodProfit, pricing.MethodMargin:
		form.Method = method
	default:
		return form, fmt.Errorf("pricing_method must be one of markup, price, profit, margin")
	}
	form.Value = pricing.ParseNumericOrZero(r.FormValue("pricing_value"))

	form.Materials = parseMaterialLines(r)
	form.Labor = parseLaborLines(r)
	form.OtherCosts = parseOtherCostLines(r)

	return form, nil
}

func parseMaterialLines(r *http.Request) []productMaterialLine {
	names := r.Form["material_name"]
	lines := make([]productMaterialLine, 0, len(names))

	for i, rawName := range names {
		name := strings.TrimSpace(rawName)
		if name == "" {
			continue
		}

		mode := pricing.ExactQuantity
		if formAt(r.Form["material_mode"], i) == string(pricing.PercentageOfStock) {
			mode = pricing.PercentageOfStock
		}

		line := productMaterialLine{
			MaterialID: int64(pricing.ParseNumericOrZero(formAt(r.Form["material_id"], i))),
			Line: pricing.MaterialLine{
				Name:          name,
				Unit:          strings.TrimSpace(formAt(r.Form["material_unit"], i)),
				PricePerUnit:  pricing.ParseNumericOrZero(formAt(r.Form["material_price"], i)),
				Mode:          mode,
				Quantity:      pricing.ParseNumericOrZero(formAt(r.Form["material_quantity"], i)),
				UnitsProduced: pricing.ParseNumericOrZero(formAt(r.Form["material_units_produced"], i)),
				Percentage:    pricing.ParseNumericOrZero(formAt(r.Form["material_percentage"], i)),
				Attribution:   parseAttribution(formAt(r.Form["material_attribution"], i)),
			},
		}
		lines = append(lines, line)
	}

	return lines
}

func parseLaborLines(r *http.Request) []pricing.LaborLine {
	activities := r.Form["labor_activity"]
	lines := make([]pricing.LaborLine, 0, len(activities))

	for i, rawActivity := range activities {
		activity := strings.TrimSpace(rawActivity)
		if activity == "" {
			continue
		}
		lines = append(lines, pricing.LaborLine{
			Activity:    activity,
			TimeMinutes: pricing.ParseNumericOrZero(formAt(r.Form["labor_minutes"], i)),
			HourlyRate:  pricing.ParseNumericOrZero(formAt(r.Form["labor_rate"], i)),
			Attribution: parseAttribution(formAt(r.Form["labor_attribution"], i)),
		})
	}

	return lines
}

func parseOtherCostLines(r *http.Request) []pricing.OtherCostLine {
	items := r.Form["other_item"]
	lines := make([]pricing.OtherCostLine, 0, len(items))

	for i, rawItem := range items {
		item := strings.TrimSpace(rawItem)
		if item == "" {
			continue
		}
		lines = append(lines, pricing.OtherCostLine{
			Item:        item,
			Quantity:    pricing.ParseNumericOrZero(formAt(r.Form["other_quantity"], i)),
			UnitCost:    pricing.ParseNumericOrZero(formAt(r.Form["other_unit_cost"], i)),
			Attribution: parseAttribution(formAt(r.Form["other_attribution"], i)),
		})
	}

	return lines
}

func parseAttribution(raw string) pricing.Attribution {
	if raw == string(pricing.PerBatch) {
		return pricing.PerBatch
	}
	return pricing.PerUnit
}

func formAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

type rowQueryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

// saveProduct writes the product and its line items, then recomputes the
// full cost/price snapshot from scratch inside the same transaction.
// id 0 inserts a new draft product.
func (s *server) saveProduct(id int64, form productFormValues) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin product transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if id == 0 {
		result, err := tx.Exec(`
			INSERT INTO products (name, status, batch_size, pricing_method, pricing_value)
			VALUES (?, ?, ?, ?, ?)
		`, form.Name, statusDraft, form.BatchSize, string(form.Method), form.Value)
		if err != nil {
			return 0, fmt.Errorf("insert product: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("read product id: %w", err)
		}
	} else {
		result, err := tx.Exec(`
			UPDATE products
			SET
				name = ?,
				batch_size = ?,
				pricing_method = ?,
				pricing_value = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, form.Name, form.BatchSize, string(form.Method), form.Value, id)
		if err != nil {
			return 0, fmt.Errorf("update product: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("update product: %w", err)
		}
		if affected == 0 {
			return 0, sql.ErrNoRows
		}

		for _, table := range []string{"product_materials", "product_labor", "product_other_costs"} {
			if _, err := tx.Exec(`DELETE FROM `+table+` WHERE product_id = ?`, id); err != nil {
				return 0, fmt.Errorf("clear %s: %w", table, err)
			}
		}
	}

	if err := insertProductLines(tx, id, form); err != nil {
		return 0, err
	}
	if err := recomputeSnapshot(tx, id, form.BatchSize, form.Method, form.Value, form.Materials, form.Labor, form.OtherCosts); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit product transaction: %w", err)
	}

	return id, nil
}

func insertProductLines(tx *sql.Tx, id int64, form productFormValues) error {
	for _, m := range form.Materials {
		var materialID any
		if m.MaterialID > 0 {
			materialID = m.MaterialID
		}
		if _, err := tx.Exec(`
			INSERT INTO product_materials (
				product_id, material_id, name, unit, price_per_unit,
				quantity_mode, quantity, units_produced, percentage, attribution
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, materialID, m.Line.Name, m.Line.Unit, m.Line.PricePerUnit,
			string(m.Line.Mode), m.Line.Quantity, m.Line.UnitsProduced, m.Line.Percentage, string(m.Line.Attribution)); err != nil {
			return fmt.Errorf("insert material line: %w", err)
		}
	}

	for _, l := range form.Labor {
		if _, err := tx.Exec(`
			INSERT INTO product_labor (product_id, activity, time_minutes, hourly_rate, attribution)
			VALUES (?, ?, ?, ?, ?)
		`, id, l.Activity, l.TimeMinutes, l.HourlyRate, string(l.Attribution)); err != nil {
			return fmt.Errorf("insert labor line: %w", err)
		}
	}

	for _, o := range form.OtherCosts {
		if _, err := tx.Exec(`
			INSERT INTO product_other_costs (product_id, item, quantity, unit_cost, attribution)
			VALUES (?, ?, ?, ?, ?)
		`, id, o.Item, o.Quantity, o.UnitCost, string(o.Attribution)); err != nil {
			return fmt.Errorf("insert other cost line: %w", err)
		}
	}

	return nil
}

// recomputeSnapshot resolves current stock levels for linked percentage
// lines, runs the full recalculation, and persists the derived columns.
// Derived values are never edited in place; a from-scratch recompute is
// the only supported mode.
func recomputeSnapshot(tx *sql.Tx, id int64, batchSize int, method pricing.Method, value float64,
	materials []productMaterialLine, labor []pricing.LaborLine, otherCosts []pricing.OtherCostLine) error {

	resolved, err := resolveStockLevels(tx, materials)
	if err != nil {
		return err
	}

	summary := pricing.Summarize(pricing.Inputs{
		BatchSize:  batchSize,
		Materials:  resolved,
		Labor:      labor,
		OtherCosts: otherCosts,
		Method:     method,
		Value:      value,
	})

	if _, err := tx.Exec(`
		UPDATE products
		SET
			product_cost = ?,
			target_price = ?,
			profit = ?,
			profit_margin = ?,
			costs_percentage = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, summary.UnitCost, summary.Price, summary.Profit, summary.Margin, summary.CostsPercentage, id); err != nil {
		return fmt.Errorf("persist pricing snapshot: %w", err)
	}

	return nil
}

// resolveStockLevels fills in the current inventory stock level for
// percentage-of-stock lines linked to a material. Unlinked lines keep
// stock 0 and therefore cost 0.
func resolveStockLevels(q rowQueryer, materials []productMaterialLine) ([]pricing.MaterialLine, error) {
	lines := make([]pricing.MaterialLine, 0, len(materials))
	for _, m := range materials {
		line := m.Line
		if line.Mode == pricing.PercentageOfStock && m.MaterialID > 0 {
			var stock float64
			err := q.QueryRow(`SELECT stock_level FROM materials WHERE id = ?`, m.MaterialID).Scan(&stock)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("resolve stock level for material %d: %w", m.MaterialID, err)
			}
			if err == nil {
				line.StockLevel = stock
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// recomputeProduct reloads a stored product and refreshes its snapshot.
// Called when inventory stock or prices change under an existing product.
func (s *server) recomputeProduct(id int64) error {
	product, err := s.getProduct(id)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin recompute transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := recomputeSnapshot(tx, id, product.BatchSize, product.Method, product.Value,
		product.Materials, product.Labor, product.OtherCosts); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recompute transaction: %w", err)
	}
	return nil
}

// recomputeProductsUsingMaterial refreshes every product that links the
// given inventory material in one of its lines.
func (s *server) recomputeProductsUsingMaterial(materialID int64) error {
	rows, err := s.db.Query(`
		SELECT DISTINCT product_id FROM product_materials WHERE material_id = ?
	`, materialID)
	if err != nil {
		return fmt.Errorf("query products using material: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate products using material: %w", err)
	}

	for _, id := range ids {
		if err := s.recomputeProduct(id); err != nil {
			return err
		}
	}
	return nil
}

func (s *server) setProductStatus(id int64, to string) error {
	var from string
	err := s.db.QueryRow(`SELECT status FROM products WHERE id = ?`, id).Scan(&from)
	if err != nil {
		return err
	}

	if !canTransition(from, to) {
		return fmt.Errorf("cannot move product from %s to %s", from, to)
	}

	if _, err := s.db.Exec(`
		UPDATE products SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, to, id); err != nil {
		return fmt.Errorf("update product status: %w", err)
	}
	return nil
}

func (s *server) listProducts(query string) ([]productListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT id, name, status, batch_size, product_cost, target_price, profit, profit_margin, created_at
		FROM products
		WHERE (? = '' OR name LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]productListItem, 0)
	for rows.Next() {
		var item productListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Status, &item.BatchSize,
			&item.ProductCost, &item.TargetPrice, &item.Profit, &item.ProfitMargin, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func (s *server) getProduct(id int64) (productRecord, error) {
	var p productRecord
	var method string
	err := s.db.QueryRow(`
		SELECT id, name, status, batch_size, pricing_method, pricing_value,
			product_cost, target_price, profit, profit_margin, costs_percentage, created_at
		FROM products
		WHERE id = ?
	`, id).Scan(
		&p.ID, &p.Name, &p.Status, &p.BatchSize, &method, &p.Value,
		&p.Snapshot.UnitCost, &p.Snapshot.Price, &p.Snapshot.Profit,
		&p.Snapshot.Margin, &p.Snapshot.CostsPercentage, &p.CreatedAt,
	)
	if err != nil {
		return productRecord{}, err
	}
	p.Method = pricing.Method(method)
	if p.Snapshot.UnitCost > 0 {
		p.Snapshot.Markup = p.Snapshot.Profit / p.Snapshot.UnitCost * 100
	}

	if p.Materials, err = s.loadMaterialLines(id); err != nil {
		return productRecord{}, err
	}
	if p.Labor, err = s.loadLaborLines(id); err != nil {
		return productRecord{}, err
	}
	if p.OtherCosts, err = s.loadOtherCostLines(id); err != nil {
		return productRecord{}, err
	}

	return p, nil
}

func (s *server) loadMaterialLines(productID int64) ([]productMaterialLine, error) {
	rows, err := s.db.Query(`
		SELECT COALESCE(material_id, 0), name, unit, price_per_unit,
			quantity_mode, quantity, units_produced, percentage, attribution
		FROM product_materials
		WHERE product_id = ?
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query material lines: %w", err)
	}
	defer rows.Close()

	lines := make([]productMaterialLine, 0)
	for rows.Next() {
		var m productMaterialLine
		var mode, attribution string
		if err := rows.Scan(&m.MaterialID, &m.Line.Name, &m.Line.Unit, &m.Line.PricePerUnit,
			&mode, &m.Line.Quantity, &m.Line.UnitsProduced, &m.Line.Percentage, &attribution); err != nil {
			return nil, fmt.Errorf("scan material line: %w", err)
		}
		m.Line.Mode = pricing.QuantityMode(mode)
		m.Line.Attribution = pricing.Attribution(attribution)
		lines = append(lines, m)
	}

	return lines, rows.Err()
}

func (s *server) loadLaborLines(productID int64) ([]pricing.LaborLine, error) {
	rows, err := s.db.Query(`
		SELECT activity, time_minutes, hourly_rate, attribution
		FROM product_labor
		WHERE product_id = ?
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query labor lines: %w", err)
	}
	defer rows.Close()

	lines := make([]pricing.LaborLine, 0)
	for rows.Next() {
		var l pricing.LaborLine
		var attribution string
		if err := rows.Scan(&l.Activity, &l.TimeMinutes, &l.HourlyRate, &attribution); err != nil {
			return nil, fmt.Errorf("scan labor line: %w", err)
		}
		l.Attribution = pricing.Attribution(attribution)
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (s *server) loadOtherCostLines(productID int64) ([]pricing.OtherCostLine, error) {
	rows, err := s.db.Query(`
		SELECT item, quantity, unit_cost, attribution
		FROM product_other_costs
		WHERE product_id = ?
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query other cost lines: %w", err)
	}
	defer rows.Close()

	lines := make([]pricing.OtherCostLine, 0)
	for rows.Next() {
		var o pricing.OtherCostLine
		var attribution string
		if err := rows.Scan(&o.Item, &o.Quantity, &o.UnitCost, &attribution); err != nil {
			return nil, fmt.Errorf("scan other cost line: %w", err)
		}
		o.Attribution = pricing.Attribution(attribution)
		lines = append(lines, o)
	}

	return lines, rows.Err()
}
