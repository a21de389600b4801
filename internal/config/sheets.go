package config

import (
	"os"

	"github.com/Veraticus/cashflow/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads the Google Sheets ledger source configuration.
// Precedence is viper (config file or CASHFLOW_ env vars), then GOOGLE_SHEETS_* variables,
// then defaults. The spreadsheet may be overridden by the --sheet flag value.
func LoadSheetsConfig(v *viper.Viper, spreadsheetID string) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	cfg.ServiceAccountPath = ExpandPath(firstNonEmpty(
		v.GetString("sheets.service_account_path"),
		os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"),
	))
	cfg.ClientID = firstNonEmpty(v.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
	cfg.ClientSecret = firstNonEmpty(v.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))
	cfg.RefreshToken = firstNonEmpty(v.GetString("sheets.refresh_token"), os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN"))
	cfg.SpreadsheetID = firstNonEmpty(
		spreadsheetID,
		v.GetString("sheets.spreadsheet_id"),
		os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
	)
	if r := v.GetString("sheets.range"); r != "" {
		cfg.Range = r
	}
	if n := v.GetInt("sheets.retry_attempts"); n > 0 {
		cfg.RetryAttempts = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
