package cases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecovigia/wildlife-case-api/cases"
	"github.com/ecovigia/wildlife-case-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from models.ProcessStatus
		to   models.ProcessStatus
		want bool
	}{
		{models.StatusInitiated, models.StatusPendingPickup, true},
		{models.StatusInitiated, models.StatusTemporaryCustody, true},
		{models.StatusInitiated, models.StatusLegalProcess, false},
		{models.StatusInitiated, models.StatusClosedReleased, false},
		{models.StatusPendingPickup, models.StatusTemporaryCustody, true},
		{models.StatusPendingPickup, models.StatusLegalProcess, true},
		{models.StatusPendingPickup, models.StatusInitiated, false},
		{models.StatusTemporaryCustody, models.StatusLegalProcess, true},
		{models.StatusTemporaryCustody, models.StatusClosedReleased, true},
		{models.StatusTemporaryCustody, models.StatusClosedFinalDisposition, true},
		{models.StatusTemporaryCustody, models.StatusPendingPickup, false},
		{models.StatusLegalProcess, models.StatusClosedReleased, true},
		{models.StatusLegalProcess, models.StatusClosedFinalDisposition, true},
		{models.StatusLegalProcess, models.StatusTemporaryCustody, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, cases.CanTransition(tt.from, tt.to))
		})
	}
}

func TestClosedStatesHaveNoExits(t *testing.T) {
	for _, closed := range []models.ProcessStatus{models.StatusClosedReleased, models.StatusClosedFinalDisposition} {
		assert.Empty(t, cases.NextStatuses(closed))
		for _, to := range models.AllStatuses() {
			assert.False(t, cases.CanTransition(closed, to), "closed state %s must not exit to %s", closed, to)
		}
	}
}

func TestNoSelfTransitions(t *testing.T) {
	for _, s := range models.AllStatuses() {
		assert.False(t, cases.CanTransition(s, s), "%s must not transition to itself", s)
	}
}

func TestCheckTransition(t *testing.T) {
	assert.NoError(t, cases.CheckTransition(models.StatusInitiated, models.StatusPendingPickup))

	err := cases.CheckTransition(models.StatusInitiated, models.StatusClosedReleased)
	assert.Error(t, err)
	var illegal *cases.IllegalTransitionError
	assert.ErrorAs(t, err, &illegal)
	assert.Equal(t, models.StatusInitiated, illegal.From)
	assert.Equal(t, models.StatusClosedReleased, illegal.To)
}

func TestNextStatusesReturnsCopy(t *testing.T) {
	first := cases.NextStatuses(models.StatusInitiated)
	first[0] = models.StatusClosedReleased

	second := cases.NextStatuses(models.StatusInitiated)
	assert.Equal(t, models.StatusPendingPickup, second[0])
}
