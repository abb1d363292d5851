package parser

import (
	"bytes"
	"dashboard-service/internal/models"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Supported upload formats (file extensions, lowercase, no dot).
var supportedFormats = map[string]bool{
	"csv":  true,
	"json": true,
	"xlsx": true,
	"xls":  true,
}

// IsSupportedFormat reports whether the extension is an accepted upload format.
func IsSupportedFormat(format string) bool {
	return supportedFormats[strings.ToLower(format)]
}

// Parse converts a raw file into the canonical row-set for the given format.
func Parse(content []byte, format string) (*models.ParseResult, error) {
	switch strings.ToLower(format) {
	case "csv":
		return ParseCSV(content)
	case "xlsx", "xls":
		return ParseXLSX(content)
	case "json":
		return ParseJSON(content)
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, format)
	}
}

// ParseCSV parses CSV content with header-row inference. Cell values are
// opportunistically typed: tokens matching a numeric grammar become numbers,
// everything else stays a string. Boolean literals are not coerced.
func ParseCSV(content []byte) (*models.ParseResult, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	// Handle mismatched column counts ourselves: pad missing, drop extra.
	reader.FieldsPerRecord = -1
	// Lazy quotes for less strict parsing of real-world CSV exports.
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &models.ParseResult{Headers: []string{}, Rows: []map[string]any{}}, nil
		}
		return nil, fmt.Errorf("%w: failed to read header row: %v", models.ErrParse, err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []map[string]any
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrParse, err)
		}

		row := make(map[string]any, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = coerceScalar(record[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	if rows == nil {
		rows = []map[string]any{}
	}
	return &models.ParseResult{Headers: headers, Rows: rows, RowCount: len(rows)}, nil
}

// ParseJSON distinguishes two shapes: an array of objects is tabular, any
// single object is wrapped as a one-row result so dashboard-format JSON can
// reuse the same pipeline as tabular uploads.
func ParseJSON(content []byte) (*models.ParseResult, error) {
	var value any
	if err := json.Unmarshal(content, &value); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrParse, err)
	}

	switch v := value.(type) {
	case []any:
		rows := make([]map[string]any, 0, len(v))
		for i, el := range v {
			obj, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: array element %d is not an object", models.ErrParse, i)
			}
			rows = append(rows, obj)
		}
		headers := []string{}
		if len(rows) > 0 {
			keys, err := firstArrayElementKeys(content)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", models.ErrParse, err)
			}
			headers = keys
		}
		return &models.ParseResult{Headers: headers, Rows: rows, RowCount: len(rows)}, nil
	case map[string]any:
		keys, err := topLevelObjectKeys(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrParse, err)
		}
		return &models.ParseResult{Headers: keys, Rows: []map[string]any{v}, RowCount: 1, Wrapped: true}, nil
	default:
		return nil, fmt.Errorf("%w: JSON value must be an object or an array of objects", models.ErrParse)
	}
}

// ParseXLSX reads the first worksheet only. The first row defines the schema;
// empty header cells are ignored and sparse trailing columns in later rows
// are tolerated as missing keys.
func ParseXLSX(content []byte) (*models.ParseResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &models.ParseResult{Headers: []string{}, Rows: []map[string]any{}}, nil
	}

	sheetRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrParse, err)
	}
	if len(sheetRows) == 0 {
		return &models.ParseResult{Headers: []string{}, Rows: []map[string]any{}}, nil
	}

	type column struct {
		index int
		name  string
	}
	var columns []column
	var headers []string
	for i, cell := range sheetRows[0] {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		columns = append(columns, column{index: i, name: name})
		headers = append(headers, name)
	}
	if headers == nil {
		headers = []string{}
	}

	var rows []map[string]any
	for _, sheetRow := range sheetRows[1:] {
		if rowIsEmpty(sheetRow) {
			continue
		}
		row := make(map[string]any, len(columns))
		for _, col := range columns {
			if col.index < len(sheetRow) && sheetRow[col.index] != "" {
				row[col.name] = coerceScalar(sheetRow[col.index])
			}
		}
		rows = append(rows, row)
	}
	if rows == nil {
		rows = []map[string]any{}
	}

	return &models.ParseResult{Headers: headers, Rows: rows, RowCount: len(rows)}, nil
}

func rowIsEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var numericToken = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// coerceScalar applies the numeric coercion pass. Numbers become float64 so
// coerced cells compare equal to values decoded from JSON uploads; integral
// floats marshal back without a fractional part.
func coerceScalar(s string) any {
	t := strings.TrimSpace(s)
	if t == "" || !numericToken.MatchString(t) {
		return s
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	return s
}

// topLevelObjectKeys returns the keys of a JSON object in document order.
// A decoded map loses ordering, so the keys are scanned from the raw bytes.
func topLevelObjectKeys(content []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	return orderedKeys(dec)
}

// firstArrayElementKeys returns the keys of the first object in a JSON array,
// in document order.
func firstArrayElementKeys(content []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("expected JSON array")
	}
	if !dec.More() {
		return []string{}, nil
	}
	return orderedKeys(dec)
}

func orderedKeys(dec *json.Decoder) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object")
	}

	keys := []string{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key")
		}
		keys = append(keys, key)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return keys, nil
}
