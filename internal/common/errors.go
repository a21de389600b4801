// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// ExpectedFormat describes the ledger layout shown to the user when a load fails.
const ExpectedFormat = `Expected CSV format:
  - Data (DD/MM/AAAA)
  - Categoria (text)
  - Subcategoria (text)
  - Tipo (Receita/Despesa)
  - Valor (number)
  - Cliente (optional)`

// Common application errors.
var (
	// ErrRenderingUnavailable is returned by chart renderers that cannot produce images.
	ErrRenderingUnavailable = errors.New("chart rendering unavailable")

	// ErrEmptyInput indicates a source that contained no data rows at all.
	ErrEmptyInput = errors.New("input has no data rows")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SchemaError reports a ledger whose columns are missing or unusable.
// It aborts the load.
type SchemaError struct {
	Reason  string
	Missing []string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("schema error: missing required columns [%s]", strings.Join(e.Missing, ", "))
	}
	return "schema error: " + e.Reason
}

// Hint returns the message shown to the user alongside the error.
func (e *SchemaError) Hint() string {
	return ExpectedFormat
}

// DataWarning is a non-fatal data quality finding raised while loading.
type DataWarning struct {
	Message string
	Rows    int
}

func (w DataWarning) String() string {
	if w.Rows > 0 {
		return fmt.Sprintf("%s (%d rows)", w.Message, w.Rows)
	}
	return w.Message
}

// ExportError reports a failure to produce or write the report artifact.
// It is fatal to the export only.
type ExportError struct {
	Err  error
	Op   string
	Path string
}

func (e *ExportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("export %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("export %s: %v", e.Op, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
