package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/loader"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ValuesGetter fetches a cell range. It is satisfied by the Sheets API
// adapter and by FakeValues in tests.
type ValuesGetter interface {
	Get(ctx context.Context, spreadsheetID, readRange string) ([][]any, error)
}

// Reader loads a ledger from a spreadsheet range whose first row is the header.
type Reader struct {
	values ValuesGetter
	logger *slog.Logger
	config Config
}

// NewReader creates a Reader backed by the Google Sheets API.
func NewReader(ctx context.Context, config Config, logger *slog.Logger) (*Reader, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return NewReaderWithValues(apiValues{srv: srv}, config, logger), nil
}

// NewReaderWithValues creates a Reader over an arbitrary ValuesGetter.
func NewReaderWithValues(values ValuesGetter, config Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{values: values, config: config, logger: logger}
}

// Load fetches the configured range and validates it like a CSV ledger.
func (r *Reader) Load(ctx context.Context) (*loader.Result, error) {
	r.logger.Info("reading ledger from spreadsheet",
		"spreadsheet_id", r.config.SpreadsheetID,
		"range", r.config.Range)

	retryOpts := common.RetryOptions{
		MaxAttempts:  r.config.RetryAttempts,
		InitialDelay: r.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 1
	}

	var cells [][]any
	err := common.WithRetry(ctx, func() error {
		var getErr error
		cells, getErr = r.values.Get(ctx, r.config.SpreadsheetID, r.config.Range)
		return classify(getErr)
	}, retryOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	if len(cells) == 0 {
		return nil, &common.SchemaError{Reason: common.ErrEmptyInput.Error()}
	}

	header := toStrings(cells[0])
	rows := make([][]string, 0, len(cells)-1)
	for _, row := range cells[1:] {
		rows = append(rows, toStrings(row))
	}

	res, err := loader.LoadRecords(ctx, header, rows)
	if err != nil {
		return nil, err
	}

	r.logger.Info("spreadsheet ledger loaded",
		"transactions", res.Ledger.Len(),
		"dropped", res.Dropped)

	return res, nil
}

// classify marks client errors as permanent so retries stop early.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &common.RetryableError{Err: fmt.Errorf("%w: %w", common.ErrRateLimit, err), Retryable: true}
		case apiErr.Code >= 400 && apiErr.Code < 500:
			return &common.RetryableError{Err: err, Retryable: false}
		}
	}
	return err
}

func toStrings(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}

type apiValues struct {
	srv *sheets.Service
}

func (a apiValues) Get(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	resp, err := a.srv.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// createSheetsService creates a read-only Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsReadonlyScope},
		}

		tokenSource = client.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}
