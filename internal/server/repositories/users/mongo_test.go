package users

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/dmitrijs2005/weekplanner/internal/dbx/dbxtest"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_Success(t *testing.T) {
	oid := primitive.NewObjectID()
	coll := &dbxtest.Collection{InsertedID: oid}
	repo := NewMongoRepository(coll)

	created := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	u := &models.User{Email: "leo@example.com", Name: "Leo", PasswordHash: []byte("h"), Salt: []byte("s"), CreatedAt: created}

	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), got.ID)

	call, ok := coll.Last("InsertOne")
	require.True(t, ok)
	doc, ok := call.Document.(document)
	require.True(t, ok)
	assert.Equal(t, "leo@example.com", doc.Email)
	assert.Equal(t, []byte("h"), doc.PasswordHash)
	assert.Equal(t, created, doc.CreatedAt)
	assert.True(t, doc.ID.IsZero(), "id is assigned by the store")
}

func TestCreate_UnexpectedInsertedID(t *testing.T) {
	repo := NewMongoRepository(&dbxtest.Collection{InsertedID: "not-an-oid"})

	got, err := repo.Create(context.Background(), &models.User{Email: "leo@example.com"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "unexpected inserted id")
}

func TestCreate_DuplicateEmail(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	repo := NewMongoRepository(&dbxtest.Collection{InsertErr: dup})

	_, err := repo.Create(context.Background(), &models.User{Email: "leo@example.com"})
	assert.True(t, errors.Is(err, common.ErrorDuplicateEmail), "got %v", err)
}

func TestCreate_DBError(t *testing.T) {
	repo := NewMongoRepository(&dbxtest.Collection{InsertErr: errors.New("db down")})

	_, err := repo.Create(context.Background(), &models.User{Email: "leo@example.com"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetUserByEmail_Found(t *testing.T) {
	oid := primitive.NewObjectID()
	coll := &dbxtest.Collection{FindOneDoc: document{
		ID: oid, Email: "leo@example.com", Name: "Leo", PasswordHash: []byte("h"), Salt: []byte("s"),
	}}
	repo := NewMongoRepository(coll)

	got, err := repo.GetUserByEmail(context.Background(), "leo@example.com")
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), got.ID)
	assert.Equal(t, "Leo", got.Name)
	assert.Equal(t, []byte("s"), got.Salt)

	call, _ := coll.Last("FindOne")
	assert.Equal(t, bson.M{"email": "leo@example.com"}, call.Filter)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo := NewMongoRepository(&dbxtest.Collection{})

	_, err := repo.GetUserByEmail(context.Background(), "ghost@example.com")
	assert.True(t, errors.Is(err, common.ErrorNotFound), "got %v", err)
}

func TestGetUserByEmail_DBError(t *testing.T) {
	repo := NewMongoRepository(&dbxtest.Collection{FindOneErr: errors.New("db err")})

	_, err := repo.GetUserByEmail(context.Background(), "leo@example.com")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db err`), err.Error())
}
