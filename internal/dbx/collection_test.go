package dbx

import (
	"errors"
	"regexp"
	"testing"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := ParseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "42", "zzzzzzzzzzzzzzzzzzzzzzzz", oid.Hex() + "00"} {
		_, err := ParseID(bad)
		assert.True(t, errors.Is(err, common.ErrorNotFound), "id %q", bad)
	}
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil))

	assert.True(t, errors.Is(WrapError(mongo.ErrNoDocuments), common.ErrorNotFound))

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.True(t, errors.Is(WrapError(dup), common.ErrorDuplicateEmail))

	err := WrapError(errors.New("connection reset"))
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*connection reset`), err.Error())
}
