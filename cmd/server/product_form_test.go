package main

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/priceme/priceme/internal/pricing"
)

func TestParseProductForm_Success(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Scarf")
	form.Set("batch_size", "4")
	form.Set("pricing_method", "margin")
	form.Set("pricing_value", "35")

	form["material_name"] = []string{"Wool", "Dye"}
	form["material_unit"] = []string{"g", "ml"}
	form["material_price"] = []string{"0.08", "0.2"}
	form["material_mode"] = []string{"exact", "percentage"}
	form["material_quantity"] = []string{"250", ""}
	form["material_units_produced"] = []string{"1", ""}
	form["material_percentage"] = []string{"", "5"}
	form["material_id"] = []string{"", "7"}
	form["material_attribution"] = []string{"per_unit", "per_batch"}

	form["labor_activity"] = []string{"Knitting"}
	form["labor_minutes"] = []string{"90"}
	form["labor_rate"] = []string{"18"}
	form["labor_attribution"] = []string{"per_unit"}

	req := httptest.NewRequest("POST", "/products", nil)
	req.Form = form

	values, err := parseProductForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if values.Name != "Scarf" || values.BatchSize != 4 {
		t.Fatalf("unexpected identity fields: %+v", values)
	}
	if values.Method != pricing.MethodMargin || values.Value != 35 {
		t.Fatalf("unexpected pricing fields: %+v", values)
	}
	if len(values.Materials) != 2 || len(values.Labor) != 1 {
		t.Fatalf("unexpected line counts: %+v", values)
	}

	dye := values.Materials[1]
	if dye.MaterialID != 7 {
		t.Fatalf("expected dye linked to material 7, got %d", dye.MaterialID)
	}
	if dye.Line.Mode != pricing.PercentageOfStock || dye.Line.Attribution != pricing.PerBatch {
		t.Fatalf("unexpected dye line: %+v", dye.Line)
	}
	if dye.Line.Percentage != 5 {
		t.Fatalf("expected dye percentage 5, got %v", dye.Line.Percentage)
	}
}

func TestParseProductForm_SkipsUnnamedLines(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Mug")
	form.Set("batch_size", "1")
	form.Set("pricing_method", "markup")
	form.Set("pricing_value", "40")
	form["material_name"] = []string{"", "Clay", "   "}
	form["material_price"] = []string{"1", "2", "3"}
	form["material_quantity"] = []string{"1", "2", "3"}

	req := httptest.NewRequest("POST", "/products", nil)
	req.Form = form

	values, err := parseProductForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(values.Materials) != 1 || values.Materials[0].Line.Name != "Clay" {
		t.Fatalf("expected only the named line to survive, got %+v", values.Materials)
	}
}

func TestParseProductForm_GarbageNumericsFallBackToZero(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Mug")
	form.Set("batch_size", "1")
	form.Set("pricing_method", "markup")
	form.Set("pricing_value", "not-a-number")
	form["labor_activity"] = []string{"Glazing"}
	form["labor_minutes"] = []string{"abc"}
	form["labor_rate"] = []string{"12"}

	req := httptest.NewRequest("POST", "/products", nil)
	req.Form = form

	values, err := parseProductForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if values.Value != 0 {
		t.Fatalf("expected pricing value to coerce to 0, got %v", values.Value)
	}
	if values.Labor[0].TimeMinutes != 0 || values.Labor[0].HourlyRate != 12 {
		t.Fatalf("unexpected labor line: %+v", values.Labor[0])
	}
}

func TestParseProductForm_RejectsBadIdentityFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(url.Values)
	}{
		{"missing name", func(f url.Values) { f.Set("name", "  ") }},
		{"zero batch size", func(f url.Values) { f.Set("batch_size", "0") }},
		{"non-integer batch size", func(f url.Values) { f.Set("batch_size", "2.5") }},
		{"unknown method", func(f url.Values) { f.Set("pricing_method", "vibes") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := url.Values{}
			form.Set("name", "Mug")
			form.Set("batch_size", "1")
			form.Set("pricing_method", "markup")
			form.Set("pricing_value", "40")
			tc.mutate(form)

			req := httptest.NewRequest("POST", "/products", nil)
			req.Form = form

			if _, err := parseProductForm(req); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
