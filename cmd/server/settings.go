package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// appSettings is the settings singleton. Currency is display-only; the
// calculation core is currency-agnostic. LaborHourlyRate is the pre-fill
// for new labor lines, never an input to the formulas themselves.
type appSettings struct {
	Currency        string
	DefaultUnit     string
	TaxPercent      float64
	LaborHourlyRate float64
}

type settingsViewData struct {
	baseViewData
	Settings appSettings
}

func (s *server) handleSettingsForm(w http.ResponseWriter, r *http.Request) {
	settings, err := s.getSettings()
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "settings.html", settingsViewData{Settings: settings})
}

func (s *server) handleSettingsSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	settings, validationErr := parseSettingsForm(r)
	if validationErr != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.renderTemplate(w, "settings.html", settingsViewData{
			baseViewData: baseViewData{ErrorMessage: validationErr.Error()},
			Settings:     settings,
		})
		return
	}

	if err := s.updateSettings(settings); err != nil {
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "settings.html", settingsViewData{
		baseViewData: baseViewData{SuccessMessage: "Settings saved."},
		Settings:     settings,
	})
}

func parseSettingsForm(r *http.Request) (appSettings, error) {
	settings := appSettings{
		Currency:    strings.ToUpper(strings.TrimSpace(r.FormValue("currency"))),
		DefaultUnit: strings.TrimSpace(r.FormValue("default_unit")),
	}

	if len(settings.Currency) != 3 {
		return settings, fmt.Errorf("currency must be a 3-letter code")
	}
	if settings.DefaultUnit == "" {
		settings.DefaultUnit = "unit"
	}

	var err error
	if settings.TaxPercent, err = parsePercent(r.FormValue("tax_percent"), "tax_percent"); err != nil {
		return settings, err
	}
	if settings.LaborHourlyRate, err = parseNonNegativeFloat(r.FormValue("labor_hourly_rate"), "labor_hourly_rate"); err != nil {
		return settings, err
	}

	return settings, nil
}

func (s *server) getSettings() (appSettings, error) {
	var settings appSettings
	err := s.db.QueryRow(`
		SELECT currency, default_unit, tax_percent, labor_hourly_rate
		FROM settings
		WHERE id = 1
	`).Scan(
		&settings.Currency,
		&settings.DefaultUnit,
		&settings.TaxPercent,
		&settings.LaborHourlyRate,
	)
	if err != nil {
		return appSettings{}, fmt.Errorf("query settings: %w", err)
	}
	return settings, nil
}

func (s *server) updateSettings(settings appSettings) error {
	_, err := s.db.Exec(`
		UPDATE settings
		SET
			currency = ?,
			default_unit = ?,
			tax_percent = ?,
			labor_hourly_rate = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		settings.Currency,
		settings.DefaultUnit,
		settings.TaxPercent,
		settings.LaborHourlyRate,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	return nil
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parsePercent(raw, field string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 100 {
		return 0, fmt.Errorf("%s must be between 0 and 100", field)
	}
	return value, nil
}
