package cases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecovigia/wildlife-case-api/models"
)

// Repository is the persistence port for the case engine. The mongo
// adapter in databases implements it; tests use an in-memory fake.
type Repository interface {
	List(ctx context.Context, f Filter) ([]models.Process, error)
	Get(ctx context.Context, id string) (*models.Process, error)
	Insert(ctx context.Context, p *models.Process) error
	// UpdateStatus applies the new status only while updatedAt still
	// equals expectedUpdatedAt, returns the stored case on success.
	UpdateStatus(ctx context.Context, id string, status models.ProcessStatus, expectedUpdatedAt, now time.Time) (*models.Process, error)
}

// Identity is the acting user stamped onto created cases
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Service runs the case workflows on top of a Repository. All methods
// translate store failures into the typed error taxonomy; deadline
// overruns surface as TimeoutError so callers can distinguish them
// from hard persistence failures.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func(models.CaseType) string
}

// NewService returns a Service backed by the given repository
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		// mongo stores timestamps at millisecond precision; stamping at
		// the same precision keeps the updatedAt CAS comparable after a
		// round trip through the store
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID: NewCaseID,
	}
}

// NewCaseID assigns a fresh case id: a type prefix for operator
// recognizability plus a UUID so rapid creation cannot collide.
func NewCaseID(t models.CaseType) string {
	prefix := "FA-"
	if t == models.CaseTypeFlora {
		prefix = "FL-"
	}
	return prefix + uuid.New().String()
}

// Create validates the draft, materializes a Process and persists it.
// The draft is re-validated here regardless of what the caller already
// did; this is the last line of defense against corrupt state, and the
// store is never touched for an invalid draft.
func (s *Service) Create(ctx context.Context, d Draft, actor Identity) (*models.Process, error) {
	if fieldErrs := Validate(d); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	now := s.now().UTC()
	p := &models.Process{
		ID:           s.newID(d.CaseType),
		CaseType:     d.CaseType,
		ActivityType: d.ActivityType,
		OccurredAt:   occurredAt(d.OccurredAt, now),
		Location:     buildLocation(d),
		Narrative:    strings.TrimSpace(d.Narrative),
		Reporter:     buildReporter(d.Reporter),
		Status:       models.StatusInitiated,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    actor.ID,
	}

	switch d.CaseType {
	case models.CaseTypeFlora:
		p.Flora = buildFlora(d.Flora)
	case models.CaseTypeFauna:
		p.Fauna = buildFauna(d.Fauna)
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, storeErr("insert", err)
	}
	return p, nil
}

// Get fetches a single case by id
func (s *Service) Get(ctx context.Context, id string) (*models.Process, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, err
		}
		return nil, storeErr("get", err)
	}
	return p, nil
}

// List fetches the cases matching the filter
func (s *Service) List(ctx context.Context, f Filter) ([]models.Process, error) {
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, storeErr("list", err)
	}
	return out, nil
}

// Stats aggregates the cases matching the filter
func (s *Service) Stats(ctx context.Context, f Filter) (Stats, error) {
	collection, err := s.repo.List(ctx, f)
	if err != nil {
		return Stats{}, storeErr("list", err)
	}
	return ComputeStats(collection), nil
}

// Transition moves a case to a new lifecycle state. The change is
// guarded twice: against the state machine, and with a compare-and-swap
// on updatedAt so two clients editing the same case cannot silently
// clobber each other.
func (s *Service) Transition(ctx context.Context, id string, next models.ProcessStatus, expectedUpdatedAt time.Time) (*models.Process, error) {
	if !next.Valid() {
		return nil, &IllegalTransitionError{To: next}
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(current.Status, next); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, next, expectedUpdatedAt, s.now().UTC())
	if err != nil {
		var nf *NotFoundError
		var conflict *ConflictError
		if errors.As(err, &nf) || errors.As(err, &conflict) {
			return nil, err
		}
		return nil, storeErr("update", err)
	}
	return updated, nil
}

func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Op: op, Err: err}
	}
	return &PersistenceError{Op: op, Err: err}
}

func occurredAt(raw string, fallback time.Time) time.Time {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return t.UTC()
}

// buildLocation converts the location form fields. Coordinates are
// materialized only when both halves are present; a lone latitude or
// longitude is dropped, matching the intake contract.
func buildLocation(d Draft) models.Location {
	loc := models.Location{
		Department:   d.Department,
		Municipality: strings.TrimSpace(d.Municipality),
		Village:      strings.TrimSpace(d.Village),
	}
	lat := optionalNumber(d.Latitude)
	lon := optionalNumber(d.Longitude)
	if lat != nil && lon != nil {
		loc.Coordinates = &models.Coordinates{Latitude: *lat, Longitude: *lon}
	}
	return loc
}

func buildReporter(r ReporterDraft) models.Reporter {
	switch r.Type {
	case models.ReporterLegalEntity:
		return models.Reporter{
			Type: models.ReporterLegalEntity,
			Entity: &models.LegalEntity{
				CompanyName:         strings.TrimSpace(r.CompanyName),
				TaxID:               strings.TrimSpace(r.TaxID),
				LegalRepresentative: strings.TrimSpace(r.LegalRepresentative),
				Contact:             strings.TrimSpace(r.CompanyContact),
			},
		}
	default:
		return models.Reporter{
			Type: models.ReporterNaturalPerson,
			Person: &models.NaturalPerson{
				Name:       strings.TrimSpace(r.Name),
				IDDocument: strings.TrimSpace(r.IDDocument),
				Contact:    strings.TrimSpace(r.Contact),
			},
		}
	}
}

func buildFlora(f *FloraDraft) *models.FloraDetails {
	unitCount, _ := parseInt(f.UnitCount) // validated upstream

	details := &models.FloraDetails{
		Identification: models.FloraIdentification{
			ProductType:    f.ProductType,
			CommonName:     strings.TrimSpace(f.CommonName),
			ScientificName: strings.TrimSpace(f.ScientificName),
		},
		Quantification: models.FloraQuantification{
			VolumeM3:  optionalNumber(f.VolumeM3),
			WeightKg:  optionalNumber(f.WeightKg),
			UnitCount: unitCount,
		},
		Media: models.Media{Photos: append([]string{}, f.Photos...)},
	}

	length := optionalNumber(f.Length)
	width := optionalNumber(f.Width)
	height := optionalNumber(f.Height)
	if length != nil && width != nil && height != nil {
		details.Quantification.Dimensions = &models.Dimensions{
			Length: *length,
			Width:  *width,
			Height: *height,
			Unit:   f.DimensionUnit,
		}
	}

	if f.HasPermit {
		details.Permit = &models.Permit{
			PermitNumber: strings.TrimSpace(f.PermitNumber),
			ValidUntil:   strings.TrimSpace(f.PermitValidUntil),
			Origin:       strings.TrimSpace(f.PermitOrigin),
			Destination:  strings.TrimSpace(f.PermitDestination),
			VehiclePlate: strings.TrimSpace(f.PermitVehiclePlate),
		}
	}
	return details
}

func buildFauna(f *FaunaDraft) *models.FaunaDetails {
	return &models.FaunaDetails{
		Identification: models.FaunaIdentification{
			CommonName:     strings.TrimSpace(f.CommonName),
			ScientificName: strings.TrimSpace(f.ScientificName),
			Class:          f.Class,
			State:          f.State,
			Sex:            f.Sex,
		},
		Assessment: models.InitialAssessment{
			PhysicalCondition: strings.TrimSpace(f.PhysicalCondition),
			Behavior:          strings.TrimSpace(f.Behavior),
		},
		Packaging: models.Packaging{Description: strings.TrimSpace(f.PackagingDescription)},
		Media: models.Media{
			Photos: append([]string{}, f.Photos...),
			Videos: append([]string{}, f.Videos...),
		},
	}
}
