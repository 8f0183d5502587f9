package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/priceme/priceme/internal/pricing"
)

func TestHandleProductsExportReturnsReadableWorkbook(t *testing.T) {
	srv := newTestServer(t)

	if _, err := srv.saveProduct(0, productFormValues{
		Name:      "Notebook",
		BatchSize: 1,
		Method:    pricing.MethodPrice,
		Value:     12,
		OtherCosts: []pricing.OtherCostLine{
			{Item: "Paper", Quantity: 1, UnitCost: 4, Attribution: pricing.PerUnit},
		},
	}); err != nil {
		t.Fatalf("saveProduct returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/products/export", nil)
	rr := httptest.NewRecorder()
	srv.handleProductsExport(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != xlsxContentType {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "products.xlsx") {
		t.Fatalf("unexpected content disposition %q", got)
	}

	workbook, err := excelize.OpenReader(rr.Body)
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer func() { _ = workbook.Close() }()

	sheet := workbook.GetSheetName(workbook.GetActiveSheetIndex())

	name, err := workbook.GetCellValue(sheet, "B2")
	if err != nil {
		t.Fatalf("read exported cell: %v", err)
	}
	if name != "Notebook" {
		t.Fatalf("expected product name in B2, got %q", name)
	}

	price, err := workbook.GetCellValue(sheet, "F2")
	if err != nil {
		t.Fatalf("read exported cell: %v", err)
	}
	if price != "12" {
		t.Fatalf("expected target price 12 in F2, got %q", price)
	}
}
