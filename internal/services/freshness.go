package services

import (
	"dashboard-service/internal/models"
	"math"
	"time"
)

// FreshnessPolicy maps a blob's age to a freshness classification. The
// source's declared cadence is passed in so a per-cadence policy can be
// swapped in without touching callers.
type FreshnessPolicy func(staleMinutes int, cadence string) string

// DefaultFreshnessPolicy uses fixed thresholds regardless of cadence:
// under an hour is fresh, under a day is stale, anything older is critical.
func DefaultFreshnessPolicy(staleMinutes int, cadence string) string {
	switch {
	case staleMinutes < 60:
		return models.FreshnessFresh
	case staleMinutes < 1440:
		return models.FreshnessStale
	default:
		return models.FreshnessCritical
	}
}

// ClassifyFreshness derives the staleness classification for one source.
// A source with no published blob is no-data with staleMinutes -1.
func ClassifyFreshness(now time.Time, lastModified *time.Time, cadence string, policy FreshnessPolicy) (string, int) {
	if lastModified == nil {
		return models.FreshnessNoData, -1
	}
	staleMinutes := int(math.Round(now.Sub(*lastModified).Minutes()))
	return policy(staleMinutes, cadence), staleMinutes
}
