package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "start_object", StartObject.String())
	assert.Equal(t, "end_object", EndObject.String())
	assert.Equal(t, "start_array", StartArray.String())
	assert.Equal(t, "end_array", EndArray.String())
	assert.Equal(t, "map_key", MapKey.String())
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "integer", Integer.String())
	assert.Equal(t, "double", Double.String())
	assert.Equal(t, "boolean", Boolean.String())
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "invalid", Kind(99).String())
}
