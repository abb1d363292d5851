package services

import (
	"dashboard-service/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFreshness_Fresh(t *testing.T) {
	now := time.Now()
	modified := now.Add(-10 * time.Minute)

	freshness, staleMinutes := ClassifyFreshness(now, &modified, models.CadenceDaily, DefaultFreshnessPolicy)

	assert.Equal(t, models.FreshnessFresh, freshness)
	assert.Equal(t, 10, staleMinutes)
}

func TestClassifyFreshness_Stale(t *testing.T) {
	now := time.Now()
	modified := now.Add(-120 * time.Minute)

	freshness, staleMinutes := ClassifyFreshness(now, &modified, models.CadenceDaily, DefaultFreshnessPolicy)

	assert.Equal(t, models.FreshnessStale, freshness)
	assert.Equal(t, 120, staleMinutes)
}

func TestClassifyFreshness_Critical(t *testing.T) {
	now := time.Now()
	modified := now.Add(-2000 * time.Minute)

	freshness, staleMinutes := ClassifyFreshness(now, &modified, models.CadenceWeekly, DefaultFreshnessPolicy)

	assert.Equal(t, models.FreshnessCritical, freshness)
	assert.Equal(t, 2000, staleMinutes)
}

func TestClassifyFreshness_NoData(t *testing.T) {
	freshness, staleMinutes := ClassifyFreshness(time.Now(), nil, models.CadenceDaily, DefaultFreshnessPolicy)

	assert.Equal(t, models.FreshnessNoData, freshness)
	assert.Equal(t, -1, staleMinutes)
}

func TestDefaultFreshnessPolicy_Boundaries(t *testing.T) {
	assert.Equal(t, models.FreshnessFresh, DefaultFreshnessPolicy(59, models.CadenceDaily))
	assert.Equal(t, models.FreshnessStale, DefaultFreshnessPolicy(60, models.CadenceDaily))
	assert.Equal(t, models.FreshnessStale, DefaultFreshnessPolicy(1439, models.CadenceDaily))
	assert.Equal(t, models.FreshnessCritical, DefaultFreshnessPolicy(1440, models.CadenceDaily))
}

func TestClassifyFreshness_CustomPolicy(t *testing.T) {
	// A cadence-aware policy can relax thresholds for slow feeds.
	policy := func(staleMinutes int, cadence string) string {
		if cadence == models.CadenceQuarterly {
			return models.FreshnessFresh
		}
		return DefaultFreshnessPolicy(staleMinutes, cadence)
	}
	now := time.Now()
	modified := now.Add(-2000 * time.Minute)

	freshness, _ := ClassifyFreshness(now, &modified, models.CadenceQuarterly, policy)

	assert.Equal(t, models.FreshnessFresh, freshness)
}
