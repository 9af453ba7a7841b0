package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollections_CoverEveryStore(t *testing.T) {
	collections := Collections()

	for _, name := range []string{"user", "rooms", "booking", "feedback"} {
		def, ok := collections[name]
		if assert.True(t, ok, name) {
			assert.NotEmpty(t, def.Indexes, name)
			assert.Contains(t, def.Validator, "$jsonSchema", name)
		}
	}
	assert.Len(t, collections, 4)
}
