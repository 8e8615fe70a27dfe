package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ecovigia/wildlife-case-api/config"
	"github.com/ecovigia/wildlife-case-api/databases"
	"github.com/ecovigia/wildlife-case-api/databases/mocks"
	"github.com/ecovigia/wildlife-case-api/models"
)

func TestNewUserDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	userDB := databases.NewUserDatabase(db)

	assert.NotEmpty(t, userDB)
}

func TestUserDatabase_FindOne(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = "mocked-user"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "users").Return(collectionHelper)

	// Create new database with mocked Database interface
	userDba := databases.NewUserDatabase(dbHelper)

	// Call method with defined filter, that in our mocked function returns
	// mocked-error
	user, err := userDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, user)
	assert.EqualError(t, err, "mocked-error")

	// Now call the same function with different filter for correct result
	user, err = userDba.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, &models.User{ID: "mocked-user"}, user)
	assert.NoError(t, err)
}

func TestUserDatabase_InsertOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var iorHelperErr databases.InsertOneResultHelper
	var iorHelperCorrect databases.InsertOneResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	iorHelperErr = &mocks.InsertOneResultHelper{}
	iorHelperCorrect = &mocks.InsertOneResultHelper{}

	iorHelperErr.(*mocks.InsertOneResultHelper).
		On("Err").
		Return(errors.New("mocked-error"))

	iorHelperCorrect.(*mocks.InsertOneResultHelper).
		On("Err").
		Return(nil)

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), bson.M{"error": true}).
		Return(iorHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), bson.M{"error": false}).
		Return(iorHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "users").Return(collectionHelper)

	userDba := databases.NewUserDatabase(dbHelper)

	_, err := userDba.InsertOne(context.Background(), bson.M{"error": true})
	assert.EqualError(t, err, "mocked-error")

	_, err = userDba.InsertOne(context.Background(), bson.M{"error": false})
	assert.NoError(t, err)
}

func TestUserDatabase_CountDocuments(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("CountDocuments", context.Background(), bson.M{"email": "taken@ecovigia.gov.co"}).
		Return(int64(1), nil)

	collectionHelper.(*mocks.CollectionHelper).
		On("CountDocuments", context.Background(), bson.M{"email": "free@ecovigia.gov.co"}).
		Return(int64(0), nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "users").Return(collectionHelper)

	userDba := databases.NewUserDatabase(dbHelper)

	count, err := userDba.CountDocuments(context.Background(), bson.M{"email": "taken@ecovigia.gov.co"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = userDba.CountDocuments(context.Background(), bson.M{"email": "free@ecovigia.gov.co"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
