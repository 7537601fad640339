package users

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/dbx"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// document is the stored shape of a user.
type document struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	PasswordHash []byte             `bson:"password_hash"`
	Salt         []byte             `bson:"salt"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *document) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Salt:         d.Salt,
		CreatedAt:    d.CreatedAt,
	}
}

type MongoRepository struct {
	coll dbx.Collection
}

func NewMongoRepository(coll dbx.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// Create inserts user and fills in its ID. A taken email yields
// common.ErrorDuplicateEmail via the unique index.
func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := document{
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Salt:         user.Salt,
		CreatedAt:    user.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, dbx.WrapError(err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id %v", res.InsertedID)
	}
	user.ID = oid.Hex()
	return user, nil
}

// GetUserByEmail expects an already normalized email.
func (r *MongoRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc document
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, dbx.WrapError(err)
	}
	return doc.toModel(), nil
}
