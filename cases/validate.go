package cases

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ecovigia/wildlife-case-api/models"
)

// Validate checks a draft against every intake rule and returns a
// field->message map covering each violation, or an empty map when the
// draft is valid. It is a pure function: no I/O, never panics, and all
// errors are reported at once rather than first-failure.
func Validate(d Draft) map[string]string {
	errs := map[string]string{}

	if !d.CaseType.Valid() {
		errs["caseType"] = "case type must be flora or fauna"
	}
	if !d.ActivityType.Valid() {
		errs["activityType"] = "activity type is required"
	}
	if strings.TrimSpace(d.Department) == "" {
		errs["department"] = "department is required"
	} else if !models.ValidDepartment(d.Department) {
		errs["department"] = "department must be one of the administrative regions"
	}
	if strings.TrimSpace(d.Municipality) == "" {
		errs["municipality"] = "municipality is required"
	}
	if strings.TrimSpace(d.Narrative) == "" {
		errs["narrative"] = "narrative is required"
	}

	validateCoordinate(errs, "latitude", d.Latitude, 90)
	validateCoordinate(errs, "longitude", d.Longitude, 180)
	validateReporter(errs, d.Reporter)

	switch d.CaseType {
	case models.CaseTypeFlora:
		if d.Flora == nil {
			errs["flora"] = "flora details are required for a flora case"
		} else {
			validateFlora(errs, d.Flora)
		}
	case models.CaseTypeFauna:
		if d.Fauna == nil {
			errs["fauna"] = "fauna details are required for a fauna case"
		} else {
			validateFauna(errs, d.Fauna)
		}
	}

	return errs
}

func validateReporter(errs map[string]string, r ReporterDraft) {
	switch r.Type {
	case models.ReporterNaturalPerson:
		if strings.TrimSpace(r.Name) == "" {
			errs["reporterName"] = "reporter name is required"
		}
		if strings.TrimSpace(r.IDDocument) == "" {
			errs["reporterDocument"] = "reporter id document is required"
		}
		if strings.TrimSpace(r.Contact) == "" {
			errs["reporterContact"] = "reporter contact is required"
		}
	case models.ReporterLegalEntity:
		if strings.TrimSpace(r.CompanyName) == "" {
			errs["companyName"] = "company name is required"
		}
		if strings.TrimSpace(r.TaxID) == "" {
			errs["taxId"] = "tax id is required"
		}
		if strings.TrimSpace(r.LegalRepresentative) == "" {
			errs["legalRepresentative"] = "legal representative is required"
		}
		if strings.TrimSpace(r.CompanyContact) == "" {
			errs["companyContact"] = "company contact is required"
		}
	default:
		errs["reporterType"] = "reporter type must be natural_person or legal_entity"
	}
}

func validateFlora(errs map[string]string, f *FloraDraft) {
	if !f.ProductType.Valid() {
		errs["productType"] = "product type must be blocks, planks, firewood, charcoal or other"
	}
	if strings.TrimSpace(f.CommonName) == "" {
		errs["commonName"] = "common name is required"
	}
	if strings.TrimSpace(f.ScientificName) == "" {
		errs["scientificName"] = "scientific name is required"
	}

	if strings.TrimSpace(f.UnitCount) == "" {
		errs["unitCount"] = "unit count is required"
	} else if n, err := parseInt(f.UnitCount); err != nil {
		errs["unitCount"] = "unit count must be a whole number"
	} else if n <= 0 {
		errs["unitCount"] = "unit count must be a positive number"
	}

	validateOptionalNumber(errs, "volumeM3", f.VolumeM3, "volume must be a valid number")
	validateOptionalNumber(errs, "weightKg", f.WeightKg, "weight must be a valid number")
	validateOptionalNumber(errs, "length", f.Length, "length must be a valid number")
	validateOptionalNumber(errs, "width", f.Width, "width must be a valid number")
	validateOptionalNumber(errs, "height", f.Height, "height must be a valid number")

	if f.HasPermit {
		permitFields := []struct{ key, value, message string }{
			{"permitNumber", f.PermitNumber, "permit number is required"},
			{"permitValidUntil", f.PermitValidUntil, "permit validity date is required"},
			{"permitOrigin", f.PermitOrigin, "permit origin is required"},
			{"permitDestination", f.PermitDestination, "permit destination is required"},
			{"permitVehiclePlate", f.PermitVehiclePlate, "permit vehicle plate is required"},
		}
		for _, pf := range permitFields {
			if strings.TrimSpace(pf.value) == "" {
				errs[pf.key] = pf.message
			}
		}
	}
}

func validateFauna(errs map[string]string, f *FaunaDraft) {
	if !f.Class.Valid() {
		errs["class"] = "class must be a supported taxonomic class"
	}
	if !f.State.Valid() {
		errs["state"] = "specimen state must be alive, dead or injured"
	}
	if !f.Sex.Valid() {
		errs["sex"] = "specimen sex must be male, female or unknown"
	}
	if strings.TrimSpace(f.CommonName) == "" {
		errs["commonName"] = "common name is required"
	}
	if strings.TrimSpace(f.ScientificName) == "" {
		errs["scientificName"] = "scientific name is required"
	}
	if strings.TrimSpace(f.PhysicalCondition) == "" {
		errs["physicalCondition"] = "physical condition description is required"
	}
	if strings.TrimSpace(f.Behavior) == "" {
		errs["behavior"] = "behavior description is required"
	}
	if strings.TrimSpace(f.PackagingDescription) == "" {
		errs["packagingDescription"] = "packaging description is required"
	}
}

// validateCoordinate checks an optional coordinate form field: blank
// is fine, anything else must parse and fall within +-bound. A single
// coordinate without its pair is not an error on its own; conversion
// only materializes the pair when both are present.
func validateCoordinate(errs map[string]string, key, value string, bound float64) {
	if strings.TrimSpace(value) == "" {
		return
	}
	n, err := parseNumber(value)
	if err != nil || math.Abs(n) > bound {
		errs[key] = key + " must be a valid number between -" +
			strconv.FormatFloat(bound, 'f', -1, 64) + " and " +
			strconv.FormatFloat(bound, 'f', -1, 64)
	}
}

func validateOptionalNumber(errs map[string]string, key, value, message string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := parseNumber(value); err != nil {
		errs[key] = message
	}
}

// parseNumber is the single parse-and-validate step for numeric form
// text. Validation and conversion both go through it so they cannot
// disagree on what counts as a number. Non-finite values are rejected:
// NaN and the infinities parse but cannot be stored or marshalled.
func parseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errors.New("value is not a finite number")
	}
	return n, nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// optionalNumber converts blank form text to absent (nil), anything
// else to its parsed value. Callers validate first; a parse failure
// here on unvalidated input yields nil rather than a zero value.
func optionalNumber(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := parseNumber(s)
	if err != nil {
		return nil
	}
	return &n
}
