package cases

import "github.com/ecovigia/wildlife-case-api/models"

// ReporterDraft is the reporter section of an intake form. Which field
// group is read depends on Type; the unused group is ignored.
type ReporterDraft struct {
	Type models.ReporterType `json:"type"`

	// natural person
	Name       string `json:"name,omitempty"`
	IDDocument string `json:"idDocument,omitempty"`
	Contact    string `json:"contact,omitempty"`

	// legal entity
	CompanyName         string `json:"companyName,omitempty"`
	TaxID               string `json:"taxId,omitempty"`
	LegalRepresentative string `json:"legalRepresentative,omitempty"`
	CompanyContact      string `json:"companyContact,omitempty"`
}

// FloraDraft is the flora section of an intake form. Numeric fields
// arrive as form text and go through parse-and-validate before any
// conversion.
type FloraDraft struct {
	ProductType    models.FloraProductType `json:"productType"`
	CommonName     string                  `json:"commonName"`
	ScientificName string                  `json:"scientificName"`

	VolumeM3  string `json:"volumeM3,omitempty"`
	WeightKg  string `json:"weightKg,omitempty"`
	UnitCount string `json:"unitCount"`

	Length        string `json:"length,omitempty"`
	Width         string `json:"width,omitempty"`
	Height        string `json:"height,omitempty"`
	DimensionUnit string `json:"dimensionUnit,omitempty"` // "cm" or "m"

	HasPermit          bool   `json:"hasPermit"`
	PermitNumber       string `json:"permitNumber,omitempty"`
	PermitValidUntil   string `json:"permitValidUntil,omitempty"`
	PermitOrigin       string `json:"permitOrigin,omitempty"`
	PermitDestination  string `json:"permitDestination,omitempty"`
	PermitVehiclePlate string `json:"permitVehiclePlate,omitempty"`

	Photos []string `json:"photos,omitempty"`
}

// FaunaDraft is the fauna section of an intake form
type FaunaDraft struct {
	CommonName     string               `json:"commonName"`
	ScientificName string               `json:"scientificName"`
	Class          models.FaunaClass    `json:"class"`
	State          models.SpecimenState `json:"state"`
	Sex            models.SpecimenSex   `json:"sex"`

	PhysicalCondition    string `json:"physicalCondition"`
	Behavior             string `json:"behavior"`
	PackagingDescription string `json:"packagingDescription"`

	Photos []string `json:"photos,omitempty"`
	Videos []string `json:"videos,omitempty"`
}

// Draft is a full intake form submission, prior to validation. Exactly
// one of Flora/Fauna must be set, matching CaseType.
type Draft struct {
	CaseType     models.CaseType     `json:"caseType"`
	ActivityType models.ActivityType `json:"activityType"`
	OccurredAt   string              `json:"occurredAt,omitempty"` // RFC 3339, defaults to now

	Department   string `json:"department"`
	Municipality string `json:"municipality"`
	Village      string `json:"village,omitempty"`
	Latitude     string `json:"latitude,omitempty"`
	Longitude    string `json:"longitude,omitempty"`

	Narrative string        `json:"narrative"`
	Reporter  ReporterDraft `json:"reporter"`

	Flora *FloraDraft `json:"flora,omitempty"`
	Fauna *FaunaDraft `json:"fauna,omitempty"`
}
