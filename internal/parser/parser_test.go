package parser

import (
	"dashboard-service/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func buildTestWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf.Bytes()
}

// ============================================================================
// TEST SUITE 1: FORMAT DISPATCH
// ============================================================================

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("csv"))
	assert.True(t, IsSupportedFormat("json"))
	assert.True(t, IsSupportedFormat("xlsx"))
	assert.True(t, IsSupportedFormat("xls"))
	assert.True(t, IsSupportedFormat("CSV"), "Format check should be case-insensitive")
	assert.False(t, IsSupportedFormat("pdf"))
	assert.False(t, IsSupportedFormat(""))
}

func TestParse_UnsupportedFormat(t *testing.T) {
	result, err := Parse([]byte("whatever"), "pdf")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "pdf")
}

// ============================================================================
// TEST SUITE 2: CSV PARSING
// ============================================================================

func TestParseCSV_HeadersAndRows(t *testing.T) {
	content := []byte("name,age,city\nAlice,30,Hanoi\nBob,25,Danang\nCara,40,Hue\n")

	result, err := ParseCSV(content)

	assert.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "city"}, result.Headers)
	assert.Equal(t, 3, result.RowCount)
	assert.Len(t, result.Rows, 3)
	assert.Equal(t, "Alice", result.Rows[0]["name"])
	assert.Equal(t, "Hue", result.Rows[2]["city"])
}

func TestParseCSV_NumericCoercion(t *testing.T) {
	content := []byte("id,score,flag,note,empty\n007,98.5,true,12abc,\n")

	result, err := ParseCSV(content)

	assert.NoError(t, err)
	row := result.Rows[0]
	assert.Equal(t, 7.0, row["id"], "Numeric tokens should become numbers")
	assert.Equal(t, 98.5, row["score"])
	assert.Equal(t, "true", row["flag"], "Boolean literals should stay strings")
	assert.Equal(t, "12abc", row["note"], "Mixed tokens should stay strings")
	assert.Equal(t, "", row["empty"], "Empty cells should stay empty strings")
}

func TestParseCSV_ScientificNotation(t *testing.T) {
	content := []byte("value\n1.5e3\n-2E-2\n")

	result, err := ParseCSV(content)

	assert.NoError(t, err)
	assert.Equal(t, 1500.0, result.Rows[0]["value"])
	assert.Equal(t, -0.02, result.Rows[1]["value"])
}

func TestParseCSV_ShortRowPadded(t *testing.T) {
	content := []byte("a,b,c\n1,2\n")

	result, err := ParseCSV(content)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
	assert.Equal(t, 1.0, result.Rows[0]["a"])
	assert.Equal(t, 2.0, result.Rows[0]["b"])
	assert.Equal(t, "", result.Rows[0]["c"], "Missing trailing cells should be padded with empty strings")
}

func TestParseCSV_HeaderWhitespaceTrimmed(t *testing.T) {
	content := []byte(" name , age \nAlice,30\n")

	result, err := ParseCSV(content)

	assert.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, result.Headers)
}

func TestParseCSV_EmptyContent(t *testing.T) {
	result, err := ParseCSV([]byte(""))

	assert.NoError(t, err)
	assert.Empty(t, result.Headers)
	assert.Empty(t, result.Rows)
	assert.Equal(t, 0, result.RowCount)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	result, err := ParseCSV([]byte("name,age\n"))

	assert.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, result.Headers)
	assert.Equal(t, 0, result.RowCount)
	assert.Empty(t, result.Rows)
}

// ============================================================================
// TEST SUITE 3: JSON PARSING
// ============================================================================

func TestParseJSON_ArrayOfObjects(t *testing.T) {
	content := []byte(`[{"name":"Alice","age":30},{"name":"Bob","age":25}]`)

	result, err := ParseJSON(content)

	assert.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, result.Headers, "Headers should preserve document key order")
	assert.Equal(t, 2, result.RowCount)
	assert.Equal(t, "Alice", result.Rows[0]["name"])
	assert.Equal(t, 25.0, result.Rows[1]["age"])
}

func TestParseJSON_SingleObjectWrapped(t *testing.T) {
	content := []byte(`{"a":1,"b":2}`)

	result, err := ParseJSON(content)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.RowCount, "A single object should become a one-row result")
	assert.Equal(t, []string{"a", "b"}, result.Headers)
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, 1.0, result.Rows[0]["a"])
	assert.Equal(t, 2.0, result.Rows[0]["b"])
}

func TestParseJSON_KeyOrderPreserved(t *testing.T) {
	content := []byte(`{"zebra":1,"apple":2,"mango":3}`)

	result, err := ParseJSON(content)

	assert.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, result.Headers)
}

func TestParseJSON_NestedObjectValues(t *testing.T) {
	content := []byte(`{"kpis":{"open":12},"responseSLA":[{"tier":"P1"}]}`)

	result, err := ParseJSON(content)

	assert.NoError(t, err)
	assert.Equal(t, []string{"kpis", "responseSLA"}, result.Headers)
	assert.Equal(t, 1, result.RowCount)
	kpis, ok := result.Rows[0]["kpis"].(map[string]any)
	assert.True(t, ok, "Nested objects should survive intact")
	assert.Equal(t, 12.0, kpis["open"])
}

func TestParseJSON_EmptyArray(t *testing.T) {
	result, err := ParseJSON([]byte(`[]`))

	assert.NoError(t, err)
	assert.Equal(t, 0, result.RowCount)
	assert.Empty(t, result.Headers)
	assert.Empty(t, result.Rows)
}

func TestParseJSON_ArrayOfScalarsRejected(t *testing.T) {
	result, err := ParseJSON([]byte(`[1,2,3]`))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrParse)
}

func TestParseJSON_ScalarRejected(t *testing.T) {
	result, err := ParseJSON([]byte(`42`))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrParse)
}

func TestParseJSON_Malformed(t *testing.T) {
	result, err := ParseJSON([]byte(`{"a":`))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrParse)
}

func TestParse_CSVAndJSONProduceEqualRows(t *testing.T) {
	csvContent := []byte("name,age\nAlice,30\nBob,25\n")
	jsonContent := []byte(`[{"name":"Alice","age":30},{"name":"Bob","age":25}]`)

	fromCSV, err := Parse(csvContent, "csv")
	assert.NoError(t, err)
	fromJSON, err := Parse(jsonContent, "json")
	assert.NoError(t, err)

	assert.Equal(t, fromJSON.Headers, fromCSV.Headers)
	assert.Equal(t, fromJSON.Rows, fromCSV.Rows, "The same data should parse identically from CSV and JSON")
}

// ============================================================================
// TEST SUITE 4: XLSX PARSING
// ============================================================================

func TestParseXLSX_FirstSheet(t *testing.T) {
	content := buildTestWorkbook(t, [][]any{
		{"name", "age"},
		{"Alice", 30},
		{"Bob", 25},
	})

	result, err := ParseXLSX(content)

	assert.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, result.Headers)
	assert.Equal(t, 2, result.RowCount)
	assert.Equal(t, "Alice", result.Rows[0]["name"])
	assert.Equal(t, 30.0, result.Rows[0]["age"], "Spreadsheet numbers should coerce like CSV cells")
}

func TestParseXLSX_SparseTrailingCells(t *testing.T) {
	content := buildTestWorkbook(t, [][]any{
		{"a", "b", "c"},
		{"x", "y"},
	})

	result, err := ParseXLSX(content)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
	assert.Equal(t, "x", result.Rows[0]["a"])
	assert.Equal(t, "y", result.Rows[0]["b"])
	_, present := result.Rows[0]["c"]
	assert.False(t, present, "Missing trailing cells should be omitted, not padded")
}

func TestParseXLSX_EmptyHeaderCellsIgnored(t *testing.T) {
	content := buildTestWorkbook(t, [][]any{
		{"a", "", "c"},
		{1, 2, 3},
	})

	result, err := ParseXLSX(content)

	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, result.Headers,
		"Columns are defined by the header row; unnamed columns are dropped even when data rows fill them")
	assert.Equal(t, 1.0, result.Rows[0]["a"])
	assert.Equal(t, 3.0, result.Rows[0]["c"])
	_, present := result.Rows[0][""]
	assert.False(t, present)
}

func TestParseXLSX_EmptyRowsSkipped(t *testing.T) {
	content := buildTestWorkbook(t, [][]any{
		{"name"},
		{"Alice"},
		{},
		{"Bob"},
	})

	result, err := ParseXLSX(content)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.RowCount)
}

func TestParseXLSX_InvalidContent(t *testing.T) {
	result, err := ParseXLSX([]byte("this is not a workbook"))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrParse)
}

// ============================================================================
// TEST SUITE 5: DOCUMENT DERIVATION
// ============================================================================

func TestDocument_WrappedObjectUnwrapped(t *testing.T) {
	result, err := ParseJSON([]byte(`{"a":1}`))
	assert.NoError(t, err)

	doc, ok := result.Document().(map[string]any)
	assert.True(t, ok, "A wrapped dashboard object should publish as the object itself")
	assert.Equal(t, 1.0, doc["a"])
}

func TestDocument_SingleRowCSVStaysArray(t *testing.T) {
	result, err := ParseCSV([]byte("name,age\nAlice,30\n"))
	assert.NoError(t, err)

	doc, ok := result.Document().([]any)
	assert.True(t, ok, "A tabular upload with one data row should still publish as an array")
	assert.Len(t, doc, 1)
	assert.Equal(t, "Alice", doc[0].(map[string]any)["name"])
}

func TestDocument_SingleElementJSONArrayStaysArray(t *testing.T) {
	result, err := ParseJSON([]byte(`[{"a":1}]`))
	assert.NoError(t, err)

	doc, ok := result.Document().([]any)
	assert.True(t, ok, "A one-element JSON array is tabular, not a wrapped object")
	assert.Len(t, doc, 1)
}

func TestDocument_MultiRowArray(t *testing.T) {
	result, err := ParseCSV([]byte("a\n1\n2\n3\n"))
	assert.NoError(t, err)

	doc, ok := result.Document().([]any)
	assert.True(t, ok, "A tabular result should publish as an array")
	assert.Len(t, doc, 3)
}
