package cases

import (
	"time"

	"github.com/ecovigia/wildlife-case-api/models"
)

// Filter narrows a case collection. Zero-valued fields impose no
// constraint; supplied fields combine with logical AND. Matching is
// exact equality on the enumerated fields and inclusive on the date
// range (applied to OccurredAt).
type Filter struct {
	CaseType     models.CaseType
	Status       models.ProcessStatus
	ActivityType models.ActivityType
	Department   string
	Municipality string
	CreatedBy    string
	From         *time.Time
	To           *time.Time

	// pagination, consumed by the store layer only
	Limit int64
	Page  int64
}

// Matches reports whether a single case satisfies every supplied
// predicate
func (f Filter) Matches(p models.Process) bool {
	if f.CaseType != "" && p.CaseType != f.CaseType {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.ActivityType != "" && p.ActivityType != f.ActivityType {
		return false
	}
	if f.Department != "" && p.Location.Department != f.Department {
		return false
	}
	if f.Municipality != "" && p.Location.Municipality != f.Municipality {
		return false
	}
	if f.CreatedBy != "" && p.CreatedBy != f.CreatedBy {
		return false
	}
	if f.From != nil && p.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && p.OccurredAt.After(*f.To) {
		return false
	}
	return true
}

// FilterCases returns the subset of the collection matching the
// filter, preserving the original relative order. Filtering the same
// collection twice with the same filter yields identical results.
func FilterCases(collection []models.Process, f Filter) []models.Process {
	out := make([]models.Process, 0, len(collection))
	for _, p := range collection {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Stats aggregates a case collection. Every mapping always carries its
// full key set, zero-filled, so renderers never probe for missing keys.
type Stats struct {
	Total      int                          `json:"total"`
	ByType     map[models.CaseType]int      `json:"byType"`
	ByStatus   map[models.ProcessStatus]int `json:"byStatus"`
	ByActivity map[models.ActivityType]int  `json:"byActivity"`
}

// ComputeStats aggregates the collection in a single pass
func ComputeStats(collection []models.Process) Stats {
	s := Stats{
		ByType: map[models.CaseType]int{
			models.CaseTypeFlora: 0,
			models.CaseTypeFauna: 0,
		},
		ByStatus:   make(map[models.ProcessStatus]int, 6),
		ByActivity: make(map[models.ActivityType]int, 3),
	}
	for _, st := range models.AllStatuses() {
		s.ByStatus[st] = 0
	}
	for _, a := range models.AllActivityTypes() {
		s.ByActivity[a] = 0
	}

	for _, p := range collection {
		s.Total++
		s.ByType[p.CaseType]++
		s.ByStatus[p.Status]++
		s.ByActivity[p.ActivityType]++
	}
	return s
}
