package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUserIndexes_EmailIsUnique(t *testing.T) {
	idx := UserIndexes()
	require.Len(t, idx, 1)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, idx[0].Keys)
	require.NotNil(t, idx[0].Options.Unique)
	assert.True(t, *idx[0].Options.Unique)
}

func TestTaskIndexes_CoverQueriedFields(t *testing.T) {
	var fields []string
	for _, m := range TaskIndexes() {
		keys, ok := m.Keys.(bson.D)
		require.True(t, ok)
		require.Len(t, keys, 1)
		fields = append(fields, keys[0].Key)
	}
	assert.ElementsMatch(t, []string{"owner_id", "deleted", "due_date", "tag"}, fields)
}

func TestConnect_InvalidURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Connect(ctx, "not-a-mongo-uri", "planner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo connect error")
}
