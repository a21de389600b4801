package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Veraticus/cashflow/internal/common"
)

// LoadCSV reads a header row plus records. Comma and semicolon
// delimiters are both accepted; the header line decides which one is used.
func LoadCSV(ctx context.Context, r io.Reader) (*Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &common.SchemaError{Reason: fmt.Sprintf("malformed CSV: %v", err)}
	}
	if len(records) == 0 {
		return nil, &common.SchemaError{Reason: common.ErrEmptyInput.Error()}
	}

	return LoadRecords(ctx, records[0], records[1:])
}

func detectDelimiter(content []byte) rune {
	header := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		header = content[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}
