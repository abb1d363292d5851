package schema

import (
	"dashboard-service/internal/models"
	"fmt"
)

// Registry holds the static validation contracts for curated sources.
// Most sources accept dashboard-format JSON (a single object with nested
// sections); field-level validation is only defined for the curated subset.
type Registry struct {
	schemas map[string]models.SourceSchema
}

// NewRegistry builds the registry with the known source schemas.
func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[string]models.SourceSchema)}

	r.register(models.SourceSchema{
		SourceID: "itsm/incidents",
		Name:     "ITSM Incidents",
		RequiredFields: []models.FieldDef{
			{Name: "kpis", Type: "string"},
			{Name: "responseSLA", Type: "string"},
		},
		OptionalFields: []models.FieldDef{
			{Name: "heatmap", Type: "string"},
			{Name: "weeklyTrend", Type: "string"},
		},
	})

	r.register(models.SourceSchema{
		SourceID: "optimization/finops",
		Name:     "FinOps",
		RequiredFields: []models.FieldDef{
			{Name: "executiveOverview", Type: "string"},
			{Name: "budgetVsConsumption", Type: "string"},
		},
		OptionalFields: []models.FieldDef{
			{Name: "recommendations", Type: "string"},
		},
	})

	return r
}

func (r *Registry) register(s models.SourceSchema) {
	r.schemas[s.SourceID] = s
}

// GetSchema returns the schema registered for a source, if any.
func (r *Registry) GetSchema(sourceID string) (models.SourceSchema, bool) {
	s, ok := r.schemas[sourceID]
	return s, ok
}

// Validate checks a single parsed record against the source's schema.
// Lenient by design: an unregistered source warns but never blocks, so
// uploads to not-yet-curated sources always pass. Optional fields are
// descriptive only and never generate warnings.
func (r *Registry) Validate(sourceID string, record map[string]any) models.ValidationResult {
	errs := []string{}
	warnings := []string{}

	schema, ok := r.schemas[sourceID]
	if !ok {
		warnings = append(warnings, fmt.Sprintf("No schema registered for %q, skipping field validation", sourceID))
		return models.ValidationResult{Valid: true, Errors: errs, Warnings: warnings}
	}

	for _, field := range schema.RequiredFields {
		if _, present := record[field.Name]; !present {
			errs = append(errs, fmt.Sprintf("Missing required field: %q", field.Name))
		}
	}

	return models.ValidationResult{Valid: len(errs) == 0, Errors: errs, Warnings: warnings}
}
