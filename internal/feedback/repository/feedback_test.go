package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewestFirst(t *testing.T) {
	opts := NewestFirst()

	assert.Equal(t, bson.D{
		{Key: "timestamp", Value: -1},
		{Key: "_id", Value: -1},
	}, opts.Sort)
}
