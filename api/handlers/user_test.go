package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecovigia/wildlife-case-api/api/handlers"
	"github.com/ecovigia/wildlife-case-api/databases"
	mocksdb "github.com/ecovigia/wildlife-case-api/databases/mocks"
	"github.com/ecovigia/wildlife-case-api/models"
)

func TestUser_UserCreateHandler(t *testing.T) {
	body := []byte(`{"name": "Ana Rodríguez", "email": "Ana@Ecovigia.gov.co", "password": "s3cret", "role": "inspector"}`)
	req, err := http.NewRequest("POST", "/api/v1/user/create-user", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper
	var insertHelper databases.InsertOneResultHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}
	singleResultHelper = &mocksdb.SingleResultHelper{}
	insertHelper = &mocksdb.InsertOneResultHelper{}

	// email not taken yet
	singleResultHelper.(*mocksdb.SingleResultHelper).On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	conn.(*mocksdb.CollectionHelper).On("FindOne", mock.Anything, bson.M{"email": "ana@ecovigia.gov.co"}).Return(singleResultHelper)
	insertHelper.(*mocksdb.InsertOneResultHelper).On("Err").Return(nil)

	var inserted models.User
	conn.(*mocksdb.CollectionHelper).On("InsertOne", mock.Anything, mock.Anything).Return(insertHelper).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(models.User)
	})
	db.(*mocksdb.DatabaseHelper).On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UserCreateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	// stored password is hashed, never plaintext
	assert.NotEqual(t, "s3cret", inserted.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.Password), []byte("s3cret")))
	assert.Equal(t, "ana@ecovigia.gov.co", inserted.Email)
	assert.Equal(t, "inspector", inserted.Role)

	var got models.User
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	// the json response never carries the password
	assert.NotContains(t, rr.Body.String(), "s3cret")
}

func TestUser_UserCreateHandlerDuplicateEmail(t *testing.T) {
	body := []byte(`{"name": "Ana", "email": "ana@ecovigia.gov.co", "password": "s3cret"}`)
	req, err := http.NewRequest("POST", "/api/v1/user/create-user", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}
	singleResultHelper = &mocksdb.SingleResultHelper{}

	singleResultHelper.(*mocksdb.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = "existing-user"
	})
	conn.(*mocksdb.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*mocksdb.DatabaseHelper).On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UserCreateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestUser_UserCreateHandlerMissingCredentials(t *testing.T) {
	body := []byte(`{"name": "Ana"}`)
	req, err := http.NewRequest("POST", "/api/v1/user/create-user", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.User{DB: databases.NewUserDatabase(&mocksdb.DatabaseHelper{})}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UserCreateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUser_UserCheckEmailHandler(t *testing.T) {
	body := []byte(`{"email": "ana@ecovigia.gov.co"}`)
	req, err := http.NewRequest("POST", "/api/v1/user/check-user", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}

	conn.(*mocksdb.CollectionHelper).On("CountDocuments", mock.Anything, bson.M{"email": "ana@ecovigia.gov.co"}).Return(int64(1), nil)
	db.(*mocksdb.DatabaseHelper).On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UserCheckEmailHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"exists": true}`, rr.Body.String())
}
