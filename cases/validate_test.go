package cases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecovigia/wildlife-case-api/cases"
	"github.com/ecovigia/wildlife-case-api/models"
)

func validFloraDraft() cases.Draft {
	return cases.Draft{
		CaseType:     models.CaseTypeFlora,
		ActivityType: models.ActivitySeizure,
		Department:   "Antioquia",
		Municipality: "Medellín",
		Narrative:    "Truck stopped at checkpoint carrying undeclared timber",
		Reporter: cases.ReporterDraft{
			Type:       models.ReporterNaturalPerson,
			Name:       "Pedro Páramo",
			IDDocument: "10203040",
			Contact:    "3001234567",
		},
		Flora: &cases.FloraDraft{
			ProductType:    models.FloraProductPlanks,
			CommonName:     "Cedro",
			ScientificName: "Cedrela odorata",
			UnitCount:      "40",
		},
	}
}

func validFaunaDraft() cases.Draft {
	return cases.Draft{
		CaseType:     models.CaseTypeFauna,
		ActivityType: models.ActivityVoluntarySurrender,
		Department:   "Amazonas",
		Municipality: "Leticia",
		Narrative:    "Resident surrendered a parrot kept as a pet",
		Reporter: cases.ReporterDraft{
			Type:       models.ReporterNaturalPerson,
			Name:       "Laura Restrepo",
			IDDocument: "50607080",
			Contact:    "3109876543",
		},
		Fauna: &cases.FaunaDraft{
			CommonName:           "Guacamaya",
			ScientificName:       "Ara macao",
			Class:                models.FaunaClassBird,
			State:                models.SpecimenAlive,
			Sex:                  models.SpecimenUnknown,
			PhysicalCondition:    "Plumage intact, slightly underweight",
			Behavior:             "Alert, responsive to stimuli",
			PackagingDescription: "Ventilated transport crate",
		},
	}
}

func TestValidateFloraDraftValid(t *testing.T) {
	errs := cases.Validate(validFloraDraft())
	assert.Empty(t, errs)
}

func TestValidateFaunaDraftValid(t *testing.T) {
	errs := cases.Validate(validFaunaDraft())
	assert.Empty(t, errs)
}

func TestValidateEmptyDraft(t *testing.T) {
	errs := cases.Validate(cases.Draft{})

	assert.Contains(t, errs, "caseType")
	assert.Contains(t, errs, "activityType")
	assert.Contains(t, errs, "department")
	assert.Contains(t, errs, "municipality")
	assert.Contains(t, errs, "narrative")
	assert.Contains(t, errs, "reporterType")
}

func TestValidateReportsAllErrorsAtOnce(t *testing.T) {
	d := validFloraDraft()
	d.Department = ""
	d.Narrative = ""
	d.Flora.CommonName = ""
	d.Flora.UnitCount = "abc"

	errs := cases.Validate(d)
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "department")
	assert.Contains(t, errs, "narrative")
	assert.Contains(t, errs, "commonName")
	assert.Contains(t, errs, "unitCount")
}

func TestValidateUnknownDepartment(t *testing.T) {
	d := validFloraDraft()
	d.Department = "Narnia"

	errs := cases.Validate(d)
	assert.Contains(t, errs, "department")
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name      string
		latitude  string
		longitude string
		wantKeys  []string
	}{
		{"blank coordinates pass", "", "", nil},
		{"valid pair passes", "4.6097", "-74.0817", nil},
		{"boundary values pass", "90", "-180", nil},
		{"latitude out of range", "90.5", "-74.0817", []string{"latitude"}},
		{"longitude out of range", "4.6097", "181", []string{"longitude"}},
		{"both out of range", "-91", "200", []string{"latitude", "longitude"}},
		{"non-numeric latitude", "four", "-74", []string{"latitude"}},
		{"lone latitude is fine", "4.6097", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validFloraDraft()
			d.Latitude = tt.latitude
			d.Longitude = tt.longitude

			errs := cases.Validate(d)
			for _, key := range tt.wantKeys {
				assert.Contains(t, errs, key)
			}
			if len(tt.wantKeys) == 0 {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateRejectsNonFiniteNumbers(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"NaN", "NaN"},
		{"positive infinity", "Inf"},
		{"signed infinity", "+Inf"},
		{"negative infinity", "-Inf"},
		{"infinity spelled out", "Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validFloraDraft()
			d.Latitude = tt.value
			d.Longitude = "-74.0817"
			d.Flora.VolumeM3 = tt.value
			d.Flora.WeightKg = tt.value

			errs := cases.Validate(d)
			assert.Contains(t, errs, "latitude")
			assert.Contains(t, errs, "volumeM3")
			assert.Contains(t, errs, "weightKg")
		})
	}
}

func TestValidateNaturalPersonReporter(t *testing.T) {
	d := validFloraDraft()
	d.Reporter = cases.ReporterDraft{Type: models.ReporterNaturalPerson}

	errs := cases.Validate(d)
	assert.Contains(t, errs, "reporterName")
	assert.Contains(t, errs, "reporterDocument")
	assert.Contains(t, errs, "reporterContact")
}

func TestValidateLegalEntityReporter(t *testing.T) {
	d := validFloraDraft()
	d.Reporter = cases.ReporterDraft{Type: models.ReporterLegalEntity}

	errs := cases.Validate(d)
	assert.Contains(t, errs, "companyName")
	assert.Contains(t, errs, "taxId")
	assert.Contains(t, errs, "legalRepresentative")
	assert.Contains(t, errs, "companyContact")
}

func TestValidateLegalEntityReporterValid(t *testing.T) {
	d := validFloraDraft()
	d.Reporter = cases.ReporterDraft{
		Type:                models.ReporterLegalEntity,
		CompanyName:         "Maderas del Norte SAS",
		TaxID:               "900123456-7",
		LegalRepresentative: "Julia Mora",
		CompanyContact:      "6041234567",
	}

	errs := cases.Validate(d)
	assert.Empty(t, errs)
}

func TestValidateMissingDetailPayload(t *testing.T) {
	d := validFloraDraft()
	d.Flora = nil
	errs := cases.Validate(d)
	assert.Contains(t, errs, "flora")

	d = validFaunaDraft()
	d.Fauna = nil
	errs = cases.Validate(d)
	assert.Contains(t, errs, "fauna")
}

func TestValidateFloraUnitCount(t *testing.T) {
	tests := []struct {
		name      string
		unitCount string
		wantErr   bool
	}{
		{"valid count", "12", false},
		{"blank", "", true},
		{"non-numeric", "doce", true},
		{"zero", "0", true},
		{"negative", "-3", true},
		{"fractional", "2.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validFloraDraft()
			d.Flora.UnitCount = tt.unitCount

			errs := cases.Validate(d)
			if tt.wantErr {
				assert.Contains(t, errs, "unitCount")
			} else {
				assert.NotContains(t, errs, "unitCount")
			}
		})
	}
}

func TestValidateFloraOptionalNumbers(t *testing.T) {
	d := validFloraDraft()
	d.Flora.VolumeM3 = "not-a-number"
	d.Flora.WeightKg = "12,5"
	d.Flora.Length = "abc"

	errs := cases.Validate(d)
	assert.Contains(t, errs, "volumeM3")
	assert.Contains(t, errs, "weightKg")
	assert.Contains(t, errs, "length")

	d = validFloraDraft()
	d.Flora.VolumeM3 = "3.2"
	d.Flora.WeightKg = "150"
	errs = cases.Validate(d)
	assert.Empty(t, errs)
}

func TestValidatePermitFieldsRequired(t *testing.T) {
	d := validFloraDraft()
	d.Flora.HasPermit = true
	d.Flora.PermitNumber = "SUNL-2024-001"
	d.Flora.PermitOrigin = "Aserrío El Roble"

	errs := cases.Validate(d)
	assert.NotContains(t, errs, "permitNumber")
	assert.NotContains(t, errs, "permitOrigin")
	assert.Contains(t, errs, "permitValidUntil")
	assert.Contains(t, errs, "permitDestination")
	assert.Contains(t, errs, "permitVehiclePlate")
}

func TestValidatePermitIgnoredWithoutFlag(t *testing.T) {
	d := validFloraDraft()
	d.Flora.HasPermit = false

	errs := cases.Validate(d)
	assert.Empty(t, errs)
}

func TestValidateFloraProductType(t *testing.T) {
	d := validFloraDraft()
	d.Flora.ProductType = "plastic"
	errs := cases.Validate(d)
	assert.Contains(t, errs, "productType")

	d.Flora.ProductType = ""
	errs = cases.Validate(d)
	assert.Contains(t, errs, "productType")

	d.Flora.ProductType = models.FloraProductCharcoal
	errs = cases.Validate(d)
	assert.Empty(t, errs)
}

func TestValidateFaunaEnumerations(t *testing.T) {
	d := validFaunaDraft()
	d.Fauna.Class = "dragon"
	d.Fauna.State = "zombie"
	d.Fauna.Sex = "robot"

	errs := cases.Validate(d)
	assert.Contains(t, errs, "class")
	assert.Contains(t, errs, "state")
	assert.Contains(t, errs, "sex")

	d = validFaunaDraft()
	d.Fauna.Class = ""
	errs = cases.Validate(d)
	assert.Contains(t, errs, "class")
}

func TestValidateFaunaDescriptionsRequired(t *testing.T) {
	d := validFaunaDraft()
	d.Fauna.PhysicalCondition = "   "
	d.Fauna.Behavior = ""
	d.Fauna.PackagingDescription = ""

	errs := cases.Validate(d)
	assert.Contains(t, errs, "physicalCondition")
	assert.Contains(t, errs, "behavior")
	assert.Contains(t, errs, "packagingDescription")
}

func TestValidateIsPure(t *testing.T) {
	d := validFloraDraft()
	first := cases.Validate(d)
	second := cases.Validate(d)
	assert.Equal(t, first, second)
	assert.Empty(t, first)
}
