package databases

// go generate: mockery --name SpeciesDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecovigia/wildlife-case-api/models"
)

const speciesName = "species"

// SpeciesDatabase contains the methods to use with the species catalog
type SpeciesDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Species, error)
}

type speciesDatabase struct {
	db DatabaseHelper
}

// NewSpeciesDatabase initializes a new instance of species database with the provided db connection
func NewSpeciesDatabase(db DatabaseHelper) SpeciesDatabase {
	return &speciesDatabase{
		db: db,
	}
}

func (c *speciesDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Species, error) {
	var species []models.Species
	err := c.db.Collection(speciesName).Find(ctx, filter, opts...).Decode(&species)
	if err != nil {
		return nil, err
	}
	return species, nil
}
