package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/dmitrijs2005/weekplanner/internal/dbx"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID `bson:"owner_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Tag         string             `bson:"tag"`
	DueDate     string             `bson:"due_date"`
	Deleted     bool               `bson:"deleted"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *document) toModel() models.Task {
	return models.Task{
		ID:          d.ID.Hex(),
		OwnerID:     d.OwnerID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Tag:         d.Tag,
		DueDate:     d.DueDate,
		Deleted:     d.Deleted,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type tagCountDocument struct {
	Tag   string `bson:"_id"`
	Count int64  `bson:"count"`
}

var byDueDate = bson.D{{Key: "due_date", Value: 1}}

type MongoRepository struct {
	coll dbx.Collection
}

func NewMongoRepository(coll dbx.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func ownerOID(ownerID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: bad owner id", common.ErrorUnauthorized)
	}
	return oid, nil
}

func (r *MongoRepository) Create(ctx context.Context, ownerID string, f models.TaskFields, now time.Time) (string, error) {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return "", err
	}

	doc := document{
		OwnerID:     owner,
		Title:       f.Title,
		Description: f.Description,
		Tag:         f.Tag,
		DueDate:     f.DueDate,
		Deleted:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", dbx.WrapError(err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id %v", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *MongoRepository) Get(ctx context.Context, ownerID, id string, includeDeleted bool) (*models.Task, error) {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return nil, err
	}
	oid, err := dbx.ParseID(id)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "owner_id": owner}
	if !includeDeleted {
		filter["deleted"] = false
	}

	var doc document
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, dbx.WrapError(err)
	}
	t := doc.toModel()
	return &t, nil
}

func (r *MongoRepository) find(ctx context.Context, filter interface{}) ([]models.Task, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(byDueDate))
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	defer cur.Close(ctx)

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, dbx.WrapError(err)
	}

	out := make([]models.Task, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}

func (r *MongoRepository) List(ctx context.Context, ownerID string, q models.ListQuery) ([]models.Task, error) {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, listFilter(owner, q))
}

// Update touches only the editable fields of an active task.
func (r *MongoRepository) Update(ctx context.Context, ownerID, id string, f models.TaskFields, now time.Time) error {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return err
	}
	oid, err := dbx.ParseID(id)
	if err != nil {
		return err
	}

	filter := scope(owner, false)
	filter["_id"] = oid
	update := bson.M{"$set": bson.M{
		"title":       f.Title,
		"description": f.Description,
		"tag":         f.Tag,
		"due_date":    f.DueDate,
		"updated_at":  now,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return dbx.WrapError(err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// SetDeleted moves a task into or out of the trash. Unknown or foreign ids
// are ignored.
func (r *MongoRepository) SetDeleted(ctx context.Context, ownerID, id string, deleted bool, now time.Time) error {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return err
	}
	oid, err := dbx.ParseID(id)
	if err != nil {
		return nil
	}

	filter := bson.M{"_id": oid, "owner_id": owner}
	update := bson.M{"$set": bson.M{"deleted": deleted, "updated_at": now}}

	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return dbx.WrapError(err)
	}
	return nil
}

// Delete removes the task for good. Unknown or foreign ids are ignored.
func (r *MongoRepository) Delete(ctx context.Context, ownerID, id string) error {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return err
	}
	oid, err := dbx.ParseID(id)
	if err != nil {
		return nil
	}

	// only trashed tasks can be destroyed
	f := scope(owner, true)
	f["_id"] = oid
	if _, err := r.coll.DeleteOne(ctx, f); err != nil {
		return dbx.WrapError(err)
	}
	return nil
}

func (r *MongoRepository) ListDeleted(ctx context.Context, ownerID string) ([]models.Task, error) {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, scope(owner, true))
}

func (r *MongoRepository) ListOverdue(ctx context.Context, ownerID, today string) ([]models.Task, error) {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, overdueFilter(owner, today))
}

func (r *MongoRepository) Search(ctx context.Context, ownerID string, q models.SearchQuery) ([]models.Task, error) {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, searchFilter(owner, q))
}

func (r *MongoRepository) CountStats(ctx context.Context, ownerID, today string) (models.Stats, error) {
	var st models.Stats

	owner, err := ownerOID(ownerID)
	if err != nil {
		return st, err
	}

	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&st.Total, listFilter(owner, models.ListQuery{Kind: models.FilterAll})},
		{&st.Upcoming, listFilter(owner, models.ListQuery{Kind: models.FilterUpcoming, Today: today})},
		{&st.Today, listFilter(owner, models.ListQuery{Kind: models.FilterToday, Today: today})},
		{&st.Overdue, overdueFilter(owner, today)},
	}
	for _, c := range counts {
		n, err := r.coll.CountDocuments(ctx, c.filter)
		if err != nil {
			return models.Stats{}, dbx.WrapError(err)
		}
		*c.dst = n
	}

	tags, err := r.coll.Distinct(ctx, "tag", tagFilter(owner))
	if err != nil {
		return models.Stats{}, dbx.WrapError(err)
	}
	st.Tags = int64(len(tags))

	return st, nil
}

func (r *MongoRepository) TagCounts(ctx context.Context, ownerID string) ([]models.TagCount, error) {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return nil, err
	}

	pipeline := bson.A{
		bson.M{"$match": tagFilter(owner)},
		bson.M{"$group": bson.M{"_id": "$tag", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"_id": 1}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	defer cur.Close(ctx)

	var docs []tagCountDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, dbx.WrapError(err)
	}

	out := make([]models.TagCount, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.TagCount{Tag: d.Tag, Count: d.Count})
	}
	return out, nil
}

// DeleteAllForOwner wipes both active and deleted tasks.
func (r *MongoRepository) DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error) {
	owner, err := ownerOID(ownerID)
	if err != nil {
		return 0, err
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"owner_id": owner})
	if err != nil {
		return 0, dbx.WrapError(err)
	}
	return res.DeletedCount, nil
}
