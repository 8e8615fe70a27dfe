package models

// Species holds the structure for the species collection in mongo.
// Entries feed the input-assist suggestion lists on the intake forms;
// case validation never checks names against this catalog.
type Species struct {
	ID                 string     `json:"_id" bson:"_id"`
	Kingdom            CaseType   `json:"kingdom" bson:"kingdom"` // flora or fauna
	CommonName         string     `json:"commonName" bson:"commonName"`
	ScientificName     string     `json:"scientificName" bson:"scientificName"`
	Family             string     `json:"family" bson:"family"`
	Class              FaunaClass `json:"class,omitempty" bson:"class,omitempty"` // fauna only
	ConservationStatus string     `json:"conservationStatus" bson:"conservationStatus"`
}
