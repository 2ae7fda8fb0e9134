// Package tabular reads the semicolon-separated (or spreadsheet) tables
// that feed an import and turns each row into a validated record.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidRow marks a row that failed decoding or validation.
	ErrInvalidRow = errors.New("invalid row")

	// ErrEmptyTable is returned for a table without a header row.
	ErrEmptyTable = errors.New("table has no header row")
)

// RowError reports a rejected row with its 1-based line number.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap exposes both ErrInvalidRow and the underlying cause.
func (e *RowError) Unwrap() []error {
	return []error{ErrInvalidRow, e.Err}
}

// RowPolicy decides what happens to a row that fails validation.
type RowPolicy string

const (
	// RowsSkip logs the rejected row and keeps reading.
	RowsSkip RowPolicy = "skip"
	// RowsAbort stops at the first rejected row.
	RowsAbort RowPolicy = "abort"
)

// Options control how a table is read.
type Options struct {
	// Sheet selects the worksheet of an .xlsx file. The first sheet is
	// used when empty.
	Sheet string
	// Policy defaults to RowsSkip.
	Policy RowPolicy
	Logger *slog.Logger
}

// Result holds the accepted records of a table and the rows that were
// rejected under RowsSkip.
type Result[T any] struct {
	Records  []T
	Rejected []*RowError
}

// ReadTranslations reads a translations table.
func ReadTranslations(path string, options Options) (*Result[TranslationRecord], error) {
	return read(path, translationColumns, options, (*TranslationRecord).Validate)
}

// ReadTranslators reads a translators table.
func ReadTranslators(path string, options Options) (*Result[TranslatorRecord], error) {
	return read(path, translatorColumns, options, (*TranslatorRecord).Validate)
}

func read[T any](path string, required []string, options Options, validate func(*T) error) (*Result[T], error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	table, err := loadTable(path, options.Sheet)
	if err != nil {
		return nil, err
	}
	if err := table.requireColumns(required); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result := &Result[T]{}
	for _, row := range table.rows {
		var record T
		err := decodeRow(table.header, row.cells, &record)
		if err == nil {
			err = validate(&record)
		}
		if err != nil {
			rowErr := &RowError{Line: row.line, Err: err}
			if options.Policy == RowsAbort {
				return nil, fmt.Errorf("%s: %w", path, rowErr)
			}
			logger.Warn("skipping invalid row", "file", path, "line", row.line, "error", err)
			result.Rejected = append(result.Rejected, rowErr)
			continue
		}
		result.Records = append(result.Records, record)
	}

	logger.Debug("read table", "file", path, "records", len(result.Records), "rejected", len(result.Rejected))
	return result, nil
}

// decodeRow maps header names to cells and decodes the map into record.
// Short rows leave the trailing fields empty.
func decodeRow(header, cells []string, record any) error {
	fields := make(map[string]interface{}, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		if i < len(cells) {
			fields[name] = cells[i]
		} else {
			fields[name] = ""
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           record,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(fields)
}

type row struct {
	line  int
	cells []string
}

type table struct {
	header []string
	rows   []row
}

func (t *table) requireColumns(required []string) error {
	present := make(map[string]bool, len(t.header))
	for _, name := range t.header {
		present[name] = true
	}

	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// loadTable reads a whole table, choosing the format by extension.
func loadTable(path, sheet string) (*table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadWorkbook(path, sheet)
	default:
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return loadDelimited(file)
	}
}

// loadDelimited reads semicolon-separated text. A leading UTF-8 or UTF-16
// byte order mark is honoured and removed.
func loadDelimited(r io.Reader) (*table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return newTable(records)
}

// loadWorkbook reads one worksheet of an .xlsx file.
func loadWorkbook(path, sheet string) (*table, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer workbook.Close()

	if sheet == "" {
		sheets := workbook.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrEmptyTable)
		}
		sheet = sheets[0]
	}

	records, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return newTable(records)
}

// newTable splits the header from the data rows and drops blank rows.
// Line numbers count the header as line 1.
func newTable(records [][]string) (*table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	t := &table{header: header}
	for i, cells := range records[1:] {
		if isBlank(cells) {
			continue
		}
		t.rows = append(t.rows, row{line: i + 2, cells: cells})
	}
	return t, nil
}

func isBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
