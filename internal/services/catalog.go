package services

import "dashboard-service/internal/models"

// DefaultSourceCatalog is the fixed list of known dashboard sources, grouped
// into ITSM, ITAM, ITOM, FinOps/optimization, and the executive summary.
// Seeded idempotently at startup.
func DefaultSourceCatalog() []models.Source {
	entry := func(sourceID, name, category, formats, cadence string) models.Source {
		return models.Source{
			SourceID:        sourceID,
			Name:            name,
			Category:        category,
			Mode:            models.ModeFile,
			AcceptedFormats: formats,
			RefreshCadence:  cadence,
		}
	}

	return []models.Source{
		entry("itsm/incidents", "ITSM Incidents", "itsm", "csv,json,xlsx", models.CadenceWeekly),
		entry("itsm/service-requests", "Service Requests", "itsm", "csv,json,xlsx", models.CadenceWeekly),
		entry("itsm/sla", "SLA Management", "itsm", "csv,json,xlsx", models.CadenceWeekly),
		entry("itsm/problems", "Problem Management", "itsm", "csv,json,xlsx", models.CadenceMonthly),
		entry("itsm/changes", "Change Management", "itsm", "csv,json,xlsx", models.CadenceWeekly),
		entry("itsm/risk", "Risk Dashboard", "itsm", "csv,json,xlsx", models.CadenceMonthly),
		entry("itam/m365", "M365 Licenses", "itam", "csv,json,xlsx", models.CadenceMonthly),
		entry("itam/entra", "Entra ID", "itam", "csv,json,xlsx", models.CadenceWeekly),
		entry("itam/assets", "Asset Management", "itam", "csv,json,xlsx", models.CadenceMonthly),
		entry("itam/lifecycle", "Asset Lifecycle", "itam", "csv,json,xlsx", models.CadenceMonthly),
		entry("itam/service-scope", "Service Scope", "itam", "csv,json,xlsx", models.CadenceQuarterly),
		entry("itom/observability", "Observability", "itom", "csv,json,xlsx", models.CadenceDaily),
		entry("itom/bizapps", "Business Applications", "itom", "csv,json,xlsx", models.CadenceDaily),
		entry("itom/techapps", "Technical Applications", "itom", "csv,json,xlsx", models.CadenceDaily),
		entry("optimization/finops", "FinOps", "optimization", "csv,json,xlsx", models.CadenceMonthly),
		entry("optimization/finops-maturity", "FinOps Maturity", "optimization", "csv,json,xlsx", models.CadenceQuarterly),
		entry("optimization/ccoe", "CCOE (Azure DevOps)", "optimization", "csv,json,xlsx", models.CadenceWeekly),
		entry("command-center/summary", "Command Center", "executive", "json", models.CadenceDaily),
	}
}
