package services

import (
	"dashboard-service/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSourceCatalog(t *testing.T) {
	catalog := DefaultSourceCatalog()

	assert.Len(t, catalog, 18)

	seen := make(map[string]bool)
	for _, src := range catalog {
		assert.False(t, seen[src.SourceID], "Duplicate source id %s", src.SourceID)
		seen[src.SourceID] = true
		assert.Equal(t, models.ModeFile, src.Mode)
		assert.NotEmpty(t, src.Name)
		assert.NotEmpty(t, src.Category)
		assert.NotEmpty(t, src.AcceptedFormats)
		assert.NotEmpty(t, src.RefreshCadence)
	}

	assert.True(t, seen["itsm/incidents"])
	assert.True(t, seen["optimization/finops"])
	assert.True(t, seen["command-center/summary"])
}

func TestDefaultSourceCatalog_SummaryIsJSONOnly(t *testing.T) {
	for _, src := range DefaultSourceCatalog() {
		if src.SourceID == "command-center/summary" {
			assert.Equal(t, "json", src.AcceptedFormats, "The executive summary only accepts dashboard-format JSON")
			return
		}
	}
	t.Fatal("command-center/summary missing from catalog")
}
