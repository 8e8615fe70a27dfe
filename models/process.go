package models

import "time"

// CaseType discriminates which detail payload a process carries
type CaseType string

// Supported case types
const (
	CaseTypeFlora CaseType = "flora"
	CaseTypeFauna CaseType = "fauna"
)

// Valid reports whether the case type is one of the supported values
func (t CaseType) Valid() bool {
	return t == CaseTypeFlora || t == CaseTypeFauna
}

// ProcessStatus is the lifecycle state of a case
type ProcessStatus string

// Lifecycle states, ordered along the legal chain of custody
const (
	StatusInitiated              ProcessStatus = "initiated"
	StatusPendingPickup          ProcessStatus = "pending_pickup"
	StatusTemporaryCustody       ProcessStatus = "temporary_custody"
	StatusLegalProcess           ProcessStatus = "legal_process"
	StatusClosedReleased         ProcessStatus = "closed_released"
	StatusClosedFinalDisposition ProcessStatus = "closed_final_disposition"
)

// AllStatuses returns every lifecycle state. Consumers rely on the full
// key set when rendering aggregations, so the order here is stable.
func AllStatuses() []ProcessStatus {
	return []ProcessStatus{
		StatusInitiated,
		StatusPendingPickup,
		StatusTemporaryCustody,
		StatusLegalProcess,
		StatusClosedReleased,
		StatusClosedFinalDisposition,
	}
}

// Valid reports whether the status is a known lifecycle state
func (s ProcessStatus) Valid() bool {
	for _, v := range AllStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the status is a closed state. Closed cases
// never transition again.
func (s ProcessStatus) Terminal() bool {
	return s == StatusClosedReleased || s == StatusClosedFinalDisposition
}

// ActivityType describes how a case originated
type ActivityType string

// Supported activity types
const (
	ActivitySeizure            ActivityType = "seizure"
	ActivityVoluntarySurrender ActivityType = "voluntary_surrender"
	ActivityRestitution        ActivityType = "restitution"
)

// AllActivityTypes returns every activity type in stable order
func AllActivityTypes() []ActivityType {
	return []ActivityType{ActivitySeizure, ActivityVoluntarySurrender, ActivityRestitution}
}

// Valid reports whether the activity type is a known value
func (a ActivityType) Valid() bool {
	return a == ActivitySeizure || a == ActivityVoluntarySurrender || a == ActivityRestitution
}

// FloraProductType classifies seized flora products
type FloraProductType string

// Supported flora product types
const (
	FloraProductBlocks   FloraProductType = "blocks"
	FloraProductPlanks   FloraProductType = "planks"
	FloraProductFirewood FloraProductType = "firewood"
	FloraProductCharcoal FloraProductType = "charcoal"
	FloraProductOther    FloraProductType = "other"
)

// Valid reports whether the product type is a known value
func (p FloraProductType) Valid() bool {
	switch p {
	case FloraProductBlocks, FloraProductPlanks, FloraProductFirewood, FloraProductCharcoal, FloraProductOther:
		return true
	}
	return false
}

// FaunaClass is the taxonomic class of a fauna specimen
type FaunaClass string

// Supported fauna classes
const (
	FaunaClassMammal       FaunaClass = "mammal"
	FaunaClassBird         FaunaClass = "bird"
	FaunaClassReptile      FaunaClass = "reptile"
	FaunaClassFish         FaunaClass = "fish"
	FaunaClassAmphibian    FaunaClass = "amphibian"
	FaunaClassInvertebrate FaunaClass = "invertebrate"
)

// Valid reports whether the class is a known taxonomic class
func (c FaunaClass) Valid() bool {
	switch c {
	case FaunaClassMammal, FaunaClassBird, FaunaClassReptile, FaunaClassFish, FaunaClassAmphibian, FaunaClassInvertebrate:
		return true
	}
	return false
}

// SpecimenState is the physical state of a fauna specimen at intake
type SpecimenState string

// Supported specimen states
const (
	SpecimenAlive   SpecimenState = "alive"
	SpecimenDead    SpecimenState = "dead"
	SpecimenInjured SpecimenState = "injured"
)

// Valid reports whether the state is a known value
func (s SpecimenState) Valid() bool {
	return s == SpecimenAlive || s == SpecimenDead || s == SpecimenInjured
}

// SpecimenSex is the sex of a fauna specimen
type SpecimenSex string

// Supported specimen sexes
const (
	SpecimenMale    SpecimenSex = "male"
	SpecimenFemale  SpecimenSex = "female"
	SpecimenUnknown SpecimenSex = "unknown"
)

// Valid reports whether the sex is a known value
func (s SpecimenSex) Valid() bool {
	return s == SpecimenMale || s == SpecimenFemale || s == SpecimenUnknown
}

// ReporterType discriminates the reporter payload
type ReporterType string

// Supported reporter types
const (
	ReporterNaturalPerson ReporterType = "natural_person"
	ReporterLegalEntity   ReporterType = "legal_entity"
)

// Coordinates holds a geographic point. Both values are stored as-is,
// no geospatial computation happens anywhere in this service.
type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Location is where the reported incident occurred
type Location struct {
	Department   string       `json:"department" bson:"department"`
	Municipality string       `json:"municipality" bson:"municipality"`
	Village      string       `json:"village,omitempty" bson:"village,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

// NaturalPerson identifies an individual reporter
type NaturalPerson struct {
	Name       string `json:"name" bson:"name"`
	IDDocument string `json:"idDocument" bson:"idDocument"`
	Contact    string `json:"contact" bson:"contact"`
}

// LegalEntity identifies a company or institution reporter
type LegalEntity struct {
	CompanyName         string `json:"companyName" bson:"companyName"`
	TaxID               string `json:"taxId" bson:"taxId"`
	LegalRepresentative string `json:"legalRepresentative" bson:"legalRepresentative"`
	Contact             string `json:"contact" bson:"contact"`
}

// Reporter is a tagged union: exactly the variant matching Type is
// populated, the other pointer stays nil.
type Reporter struct {
	Type   ReporterType   `json:"type" bson:"type"`
	Person *NaturalPerson `json:"person,omitempty" bson:"person,omitempty"`
	Entity *LegalEntity   `json:"entity,omitempty" bson:"entity,omitempty"`
}

// Dimensions describes the measured size of a flora product
type Dimensions struct {
	Length float64 `json:"length" bson:"length"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Unit   string  `json:"unit" bson:"unit"` // "cm" or "m"
}

// Permit is the transport/possession permit attached to a flora case.
// When present all five fields are required.
type Permit struct {
	PermitNumber string `json:"permitNumber" bson:"permitNumber"`
	ValidUntil   string `json:"validUntil" bson:"validUntil"`
	Origin       string `json:"origin" bson:"origin"`
	Destination  string `json:"destination" bson:"destination"`
	VehiclePlate string `json:"vehiclePlate" bson:"vehiclePlate"`
}

// Media holds evidence attachment references. Only reference
// identifiers (upload URLs) are stored, never binary content.
type Media struct {
	Photos []string `json:"photos" bson:"photos"`
	Videos []string `json:"videos,omitempty" bson:"videos,omitempty"`
}

// FloraIdentification identifies the seized flora product
type FloraIdentification struct {
	ProductType    FloraProductType `json:"productType" bson:"productType"`
	CommonName     string           `json:"commonName" bson:"commonName"`
	ScientificName string           `json:"scientificName" bson:"scientificName"`
}

// FloraQuantification quantifies the seized flora product. Volume and
// weight are absent (nil) when not supplied, never zero-valued.
type FloraQuantification struct {
	VolumeM3   *float64    `json:"volumeM3,omitempty" bson:"volumeM3,omitempty"`
	WeightKg   *float64    `json:"weightKg,omitempty" bson:"weightKg,omitempty"`
	UnitCount  int         `json:"unitCount" bson:"unitCount"`
	Dimensions *Dimensions `json:"dimensions,omitempty" bson:"dimensions,omitempty"`
}

// FloraDetails is the flora-specific payload of a process
type FloraDetails struct {
	Identification FloraIdentification `json:"identification" bson:"identification"`
	Quantification FloraQuantification `json:"quantification" bson:"quantification"`
	Permit         *Permit             `json:"permit,omitempty" bson:"permit,omitempty"`
	Media          Media               `json:"media" bson:"media"`
}

// FaunaIdentification identifies the fauna specimen
type FaunaIdentification struct {
	CommonName     string        `json:"commonName" bson:"commonName"`
	ScientificName string        `json:"scientificName" bson:"scientificName"`
	Class          FaunaClass    `json:"class" bson:"class"`
	State          SpecimenState `json:"state" bson:"state"`
	Sex            SpecimenSex   `json:"sex" bson:"sex"`
}

// InitialAssessment is the intake veterinary/behavioral assessment
type InitialAssessment struct {
	PhysicalCondition string `json:"physicalCondition" bson:"physicalCondition"`
	Behavior          string `json:"behavior" bson:"behavior"`
}

// Packaging describes how the specimen is contained and transported
type Packaging struct {
	Description string `json:"description" bson:"description"`
}

// FaunaDetails is the fauna-specific payload of a process
type FaunaDetails struct {
	Identification FaunaIdentification `json:"identification" bson:"identification"`
	Assessment     InitialAssessment   `json:"assessment" bson:"assessment"`
	Packaging      Packaging           `json:"packaging" bson:"packaging"`
	Media          Media               `json:"media" bson:"media"`
}

// Process holds the structure for the cases collection in mongo.
// Exactly one of Flora/Fauna is populated, matching CaseType.
type Process struct {
	ID           string        `json:"id" bson:"_id"`
	CaseType     CaseType      `json:"caseType" bson:"caseType"`
	ActivityType ActivityType  `json:"activityType" bson:"activityType"`
	OccurredAt   time.Time     `json:"occurredAt" bson:"occurredAt"`
	Location     Location      `json:"location" bson:"location"`
	Narrative    string        `json:"narrative" bson:"narrative"`
	Reporter     Reporter      `json:"reporter" bson:"reporter"`
	Status       ProcessStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
	CreatedBy    string        `json:"createdBy" bson:"createdBy"`
	Flora        *FloraDetails `json:"flora,omitempty" bson:"flora,omitempty"`
	Fauna        *FaunaDetails `json:"fauna,omitempty" bson:"fauna,omitempty"`
}

// Departments is the fixed enumeration of Colombian administrative
// regions accepted in Location.Department.
var Departments = []string{
	"Amazonas", "Antioquia", "Arauca", "Atlántico", "Bolívar", "Boyacá",
	"Caldas", "Caquetá", "Casanare", "Cauca", "Cesar", "Chocó", "Córdoba",
	"Cundinamarca", "Guainía", "Guaviare", "Huila", "La Guajira", "Magdalena",
	"Meta", "Nariño", "Norte de Santander", "Putumayo", "Quindío", "Risaralda",
	"San Andrés y Providencia", "Santander", "Sucre", "Tolima",
	"Valle del Cauca", "Vaupés", "Vichada",
}

// ValidDepartment reports whether name is one of the fixed regions
func ValidDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}
