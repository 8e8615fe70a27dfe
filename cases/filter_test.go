package cases_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ecovigia/wildlife-case-api/cases"
	"github.com/ecovigia/wildlife-case-api/models"
)

func sampleCase(id string, caseType models.CaseType, status models.ProcessStatus, activity models.ActivityType, department string, occurred time.Time) models.Process {
	return models.Process{
		ID:           id,
		CaseType:     caseType,
		Status:       status,
		ActivityType: activity,
		OccurredAt:   occurred,
		Location: models.Location{
			Department:   department,
			Municipality: "Capital",
		},
		CreatedBy: "officer-1",
	}
}

func sampleCollection() []models.Process {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Process{
		sampleCase("FL-1", models.CaseTypeFlora, models.StatusInitiated, models.ActivitySeizure, "Antioquia", base),
		sampleCase("FA-1", models.CaseTypeFauna, models.StatusPendingPickup, models.ActivityVoluntarySurrender, "Amazonas", base.AddDate(0, 0, 1)),
		sampleCase("FL-2", models.CaseTypeFlora, models.StatusLegalProcess, models.ActivitySeizure, "Antioquia", base.AddDate(0, 0, 2)),
		sampleCase("FA-2", models.CaseTypeFauna, models.StatusClosedReleased, models.ActivityRestitution, "Chocó", base.AddDate(0, 0, 3)),
		sampleCase("FA-3", models.CaseTypeFauna, models.StatusPendingPickup, models.ActivitySeizure, "Amazonas", base.AddDate(0, 0, 4)),
	}
}

func TestFilterZeroValueMatchesAll(t *testing.T) {
	collection := sampleCollection()
	out := cases.FilterCases(collection, cases.Filter{})
	assert.Equal(t, collection, out)
}

func TestFilterCombinesWithAnd(t *testing.T) {
	collection := sampleCollection()

	out := cases.FilterCases(collection, cases.Filter{
		CaseType: models.CaseTypeFauna,
		Status:   models.StatusPendingPickup,
	})
	assert.Len(t, out, 2)
	assert.Equal(t, "FA-1", out[0].ID)
	assert.Equal(t, "FA-3", out[1].ID)

	out = cases.FilterCases(collection, cases.Filter{
		CaseType:     models.CaseTypeFauna,
		Status:       models.StatusPendingPickup,
		ActivityType: models.ActivitySeizure,
	})
	assert.Len(t, out, 1)
	assert.Equal(t, "FA-3", out[0].ID)
}

func TestFilterByDepartment(t *testing.T) {
	out := cases.FilterCases(sampleCollection(), cases.Filter{Department: "Antioquia"})
	assert.Len(t, out, 2)

	out = cases.FilterCases(sampleCollection(), cases.Filter{Department: "Vichada"})
	assert.Empty(t, out)
}

func TestFilterDateRangeInclusive(t *testing.T) {
	collection := sampleCollection()
	from := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

	out := cases.FilterCases(collection, cases.Filter{From: &from, To: &to})
	assert.Len(t, out, 3)
	assert.Equal(t, "FA-1", out[0].ID)
	assert.Equal(t, "FA-2", out[2].ID)
}

func TestFilterPreservesOrderAndIsIdempotent(t *testing.T) {
	collection := sampleCollection()
	f := cases.Filter{CaseType: models.CaseTypeFauna}

	first := cases.FilterCases(collection, f)
	second := cases.FilterCases(collection, f)
	assert.Equal(t, first, second)

	again := cases.FilterCases(first, f)
	assert.Equal(t, first, again)
}

func TestComputeStatsZeroFilled(t *testing.T) {
	stats := cases.ComputeStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Len(t, stats.ByType, 2)
	assert.Len(t, stats.ByStatus, 6)
	assert.Len(t, stats.ByActivity, 3)
	for _, s := range models.AllStatuses() {
		assert.Equal(t, 0, stats.ByStatus[s])
	}
	for _, a := range models.AllActivityTypes() {
		assert.Equal(t, 0, stats.ByActivity[a])
	}
}

func TestComputeStatsCounts(t *testing.T) {
	stats := cases.ComputeStats(sampleCollection())

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.ByType[models.CaseTypeFlora])
	assert.Equal(t, 3, stats.ByType[models.CaseTypeFauna])
	assert.Equal(t, 1, stats.ByStatus[models.StatusInitiated])
	assert.Equal(t, 2, stats.ByStatus[models.StatusPendingPickup])
	assert.Equal(t, 1, stats.ByStatus[models.StatusLegalProcess])
	assert.Equal(t, 1, stats.ByStatus[models.StatusClosedReleased])
	assert.Equal(t, 0, stats.ByStatus[models.StatusTemporaryCustody])
	assert.Equal(t, 3, stats.ByActivity[models.ActivitySeizure])
	assert.Equal(t, 1, stats.ByActivity[models.ActivityVoluntarySurrender])
	assert.Equal(t, 1, stats.ByActivity[models.ActivityRestitution])
}

func TestComputeStatsTotalsAreConsistent(t *testing.T) {
	stats := cases.ComputeStats(sampleCollection())

	typeSum := 0
	for _, n := range stats.ByType {
		typeSum += n
	}
	statusSum := 0
	for _, n := range stats.ByStatus {
		statusSum += n
	}
	assert.Equal(t, stats.Total, typeSum)
	assert.Equal(t, stats.Total, statusSum)
}
