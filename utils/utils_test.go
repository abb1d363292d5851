package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "csv", FileExtension("assets.csv"))
	assert.Equal(t, "xlsx", FileExtension("Report.XLSX"))
	assert.Equal(t, "json", FileExtension("a.b.json"))
	assert.Equal(t, "", FileExtension("noextension"))
}

func TestGenerateSafeFilename(t *testing.T) {
	name := GenerateSafeFilename("q3 report (final).csv")

	assert.True(t, strings.HasSuffix(name, ".csv"))
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "(")
	assert.Contains(t, name, "q3_report")
}
