package main

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *server) handleProductsExport(w http.ResponseWriter, r *http.Request) {
	products, err := s.listProducts("")
	if err != nil {
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}

	f, err := buildProductsWorkbook(products)
	if err != nil {
		http.Error(w, "failed to build export file", http.StatusInternalServerError)
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)
	// Headers are already written, so a failure here can only abort the body.
	_ = f.Write(w)
}

func buildProductsWorkbook(products []productListItem) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id",
		"name",
		"status",
		"batch_size",
		"unit_cost",
		"target_price",
		"profit",
		"profit_margin",
		"created_at",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write export header: %w", err)
	}

	row := 2
	for _, p := range products {
		values := []interface{}{
			p.ID,
			p.Name,
			p.Status,
			p.BatchSize,
			p.ProductCost,
			p.TargetPrice,
			p.Profit,
			p.ProfitMargin,
			p.CreatedAt,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("compute export cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write export row: %w", err)
		}
		row++
	}

	return f, nil
}
