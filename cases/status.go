package cases

import "github.com/ecovigia/wildlife-case-api/models"

// transitions is the adjacency table of the case lifecycle. A case in
// a state on the left may only move to one of the states on the right;
// closed states have no exits.
var transitions = map[models.ProcessStatus][]models.ProcessStatus{
	models.StatusInitiated: {
		models.StatusPendingPickup,
		models.StatusTemporaryCustody,
	},
	models.StatusPendingPickup: {
		models.StatusTemporaryCustody,
		models.StatusLegalProcess,
	},
	models.StatusTemporaryCustody: {
		models.StatusLegalProcess,
		models.StatusClosedReleased,
		models.StatusClosedFinalDisposition,
	},
	models.StatusLegalProcess: {
		models.StatusClosedReleased,
		models.StatusClosedFinalDisposition,
	},
	models.StatusClosedReleased:         {},
	models.StatusClosedFinalDisposition: {},
}

// CanTransition reports whether the lifecycle permits moving a case
// from one status to another
func CanTransition(from, to models.ProcessStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses a case may legally move to from
// the given state. Closed states return an empty slice.
func NextStatuses(from models.ProcessStatus) []models.ProcessStatus {
	next := transitions[from]
	out := make([]models.ProcessStatus, len(next))
	copy(out, next)
	return out
}

// CheckTransition validates a proposed status change, returning an
// IllegalTransitionError when the lifecycle forbids it
func CheckTransition(from, to models.ProcessStatus) error {
	if !CanTransition(from, to) {
		return &IllegalTransitionError{From: from, To: to}
	}
	return nil
}
