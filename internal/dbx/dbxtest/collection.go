// Package dbxtest provides an in-memory stand-in for dbx.Collection that
// records every call and replays canned results.
package dbxtest

import (
	"context"

	"github.com/dmitrijs2005/weekplanner/internal/dbx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Call is one recorded invocation.
type Call struct {
	Method   string
	Filter   interface{}
	Update   interface{}
	Document interface{}
	Field    string
	Find     []*options.FindOptions
}

// Collection replays the configured results. Any field left nil yields a
// zero result with no error.
type Collection struct {
	Calls []Call

	FindDocs []interface{}
	FindErr  error

	FindOneDoc interface{}
	FindOneErr error

	InsertedID interface{}
	InsertErr  error

	Matched   int64
	UpdateErr error

	Deleted   int64
	DeleteErr error

	// CountFn returns the count for a given filter.
	CountFn  func(filter interface{}) int64
	CountErr error

	DistinctValues []interface{}
	DistinctErr    error

	AggregateDocs []interface{}
	AggregateErr  error
}

var _ dbx.Collection = (*Collection)(nil)

func (c *Collection) record(call Call) { c.Calls = append(c.Calls, call) }

// Last returns the most recent call to method, or false if there was none.
func (c *Collection) Last(method string) (Call, bool) {
	for i := len(c.Calls) - 1; i >= 0; i-- {
		if c.Calls[i].Method == method {
			return c.Calls[i], true
		}
	}
	return Call{}, false
}

// All returns every call to method in order.
func (c *Collection) All(method string) []Call {
	var out []Call
	for _, call := range c.Calls {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

func (c *Collection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	c.record(Call{Method: "Find", Filter: filter, Find: opts})
	if c.FindErr != nil {
		return nil, c.FindErr
	}
	return mongo.NewCursorFromDocuments(c.FindDocs, nil, nil)
}

func (c *Collection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	c.record(Call{Method: "FindOne", Filter: filter})
	if c.FindOneErr != nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, c.FindOneErr, nil)
	}
	if c.FindOneDoc == nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(c.FindOneDoc, nil, nil)
}

func (c *Collection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	c.record(Call{Method: "InsertOne", Document: document})
	if c.InsertErr != nil {
		return nil, c.InsertErr
	}
	return &mongo.InsertOneResult{InsertedID: c.InsertedID}, nil
}

func (c *Collection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	c.record(Call{Method: "UpdateOne", Filter: filter, Update: update})
	if c.UpdateErr != nil {
		return nil, c.UpdateErr
	}
	return &mongo.UpdateResult{MatchedCount: c.Matched, ModifiedCount: c.Matched}, nil
}

func (c *Collection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	c.record(Call{Method: "DeleteOne", Filter: filter})
	if c.DeleteErr != nil {
		return nil, c.DeleteErr
	}
	return &mongo.DeleteResult{DeletedCount: c.Deleted}, nil
}

func (c *Collection) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	c.record(Call{Method: "DeleteMany", Filter: filter})
	if c.DeleteErr != nil {
		return nil, c.DeleteErr
	}
	return &mongo.DeleteResult{DeletedCount: c.Deleted}, nil
}

func (c *Collection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	c.record(Call{Method: "CountDocuments", Filter: filter})
	if c.CountErr != nil {
		return 0, c.CountErr
	}
	if c.CountFn == nil {
		return 0, nil
	}
	return c.CountFn(filter), nil
}

func (c *Collection) Distinct(ctx context.Context, fieldName string, filter interface{}, opts ...*options.DistinctOptions) ([]interface{}, error) {
	c.record(Call{Method: "Distinct", Filter: filter, Field: fieldName})
	if c.DistinctErr != nil {
		return nil, c.DistinctErr
	}
	return c.DistinctValues, nil
}

func (c *Collection) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	c.record(Call{Method: "Aggregate", Filter: pipeline})
	if c.AggregateErr != nil {
		return nil, c.AggregateErr
	}
	return mongo.NewCursorFromDocuments(c.AggregateDocs, nil, nil)
}
