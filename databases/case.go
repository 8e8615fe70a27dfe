package databases

// go generate: mockery --name CaseDatabase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecovigia/wildlife-case-api/cases"
	"github.com/ecovigia/wildlife-case-api/models"
)

const caseName = "cases"

// CaseDatabase contains the methods to use with the case database
type CaseDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Process, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Process, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (int64, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type caseDatabase struct {
	db DatabaseHelper
}

// NewCaseDatabase initializes a new instance of case database with the provided db connection
func NewCaseDatabase(db DatabaseHelper) CaseDatabase {
	return &caseDatabase{
		db: db,
	}
}

func (c *caseDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Process, error) {
	process := &models.Process{}
	err := c.db.Collection(caseName).FindOne(ctx, filter, opts...).Decode(&process)
	if err != nil {
		return nil, err
	}
	return process, nil
}

func (c *caseDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Process, error) {
	var processes []models.Process
	err := c.db.Collection(caseName).Find(ctx, filter, opts...).Decode(&processes)
	if err != nil {
		return nil, err
	}
	return processes, nil
}

func (c *caseDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res := c.db.Collection(caseName).InsertOne(ctx, document, opts...)
	return res, res.Err()
}

func (c *caseDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error) {
	return c.db.Collection(caseName).UpdateOne(ctx, filter, update, opts...)
}

func (c *caseDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(caseName).CountDocuments(ctx, filter, opts...)
}

// caseRepository adapts CaseDatabase to the engine's Repository port,
// translating cases.Filter into bson and the CAS status update into a
// conditional UpdateOne.
type caseRepository struct {
	db CaseDatabase
}

// NewCaseRepository returns the mongo-backed cases.Repository
func NewCaseRepository(db CaseDatabase) cases.Repository {
	return &caseRepository{db: db}
}

func (r *caseRepository) List(ctx context.Context, f cases.Filter) ([]models.Process, error) {
	filter := bson.M{}
	if f.CaseType != "" {
		filter["caseType"] = f.CaseType
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.ActivityType != "" {
		filter["activityType"] = f.ActivityType
	}
	if f.Department != "" {
		filter["location.department"] = f.Department
	}
	if f.Municipality != "" {
		filter["location.municipality"] = f.Municipality
	}
	if f.CreatedBy != "" {
		filter["createdBy"] = f.CreatedBy
	}
	if f.From != nil || f.To != nil {
		dateRange := bson.M{}
		if f.From != nil {
			dateRange["$gte"] = primitive.NewDateTimeFromTime(*f.From)
		}
		if f.To != nil {
			dateRange["$lte"] = primitive.NewDateTimeFromTime(*f.To)
		}
		filter["occurredAt"] = dateRange
	}

	// creation order keeps list results stable across identical queries
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	if f.Limit > 0 {
		paged := newMongoPaginate(int(f.Limit), int(f.Page)).getPaginatedOpts()
		opts = opts.SetLimit(*paged.Limit).SetSkip(*paged.Skip)
	}

	processes, err := r.db.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if processes == nil {
		processes = []models.Process{}
	}
	return processes, nil
}

func (r *caseRepository) Get(ctx context.Context, id string) (*models.Process, error) {
	p, err := r.db.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &cases.NotFoundError{ID: id}
		}
		return nil, err
	}
	return p, nil
}

func (r *caseRepository) Insert(ctx context.Context, p *models.Process) error {
	_, err := r.db.InsertOne(ctx, p)
	return err
}

func (r *caseRepository) UpdateStatus(ctx context.Context, id string, status models.ProcessStatus, expectedUpdatedAt, now time.Time) (*models.Process, error) {
	filter := bson.M{
		"_id":       id,
		"updatedAt": primitive.NewDateTimeFromTime(expectedUpdatedAt),
	}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": primitive.NewDateTimeFromTime(now),
	}}

	matched, err := r.db.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		// distinguish a missing case from a stale precondition
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, &cases.ConflictError{ID: id}
	}
	return r.Get(ctx, id)
}
