package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparin/internal/store"
)

func TestEncodeUsesJSONFieldNames(t *testing.T) {
	data, err := store.Encode(&gadget{ID: "g1", Name: "ball", Count: 2})
	require.NoError(t, err)

	assert.Equal(t, "g1", data["id"])
	assert.Equal(t, "ball", data["name"])
	// Numbers round-trip through JSON as float64.
	assert.Equal(t, float64(2), data["count"])
}

func TestDecodeDocumentIDWinsOverPayload(t *testing.T) {
	doc := store.RawDocument{
		Collection: "gadgets",
		ID:         "actual",
		Data:       map[string]interface{}{"id": "stale", "name": "ball"},
	}

	var g gadget
	require.NoError(t, store.Decode(doc, &g))
	assert.Equal(t, "actual", g.ID)
	assert.Equal(t, "ball", g.Name)
}

func TestDecodeUnknownFieldsAreIgnored(t *testing.T) {
	doc := store.RawDocument{
		ID:   "g1",
		Data: map[string]interface{}{"name": "ball", "legacyField": true},
	}

	var g gadget
	assert.NoError(t, store.Decode(doc, &g))
	assert.Equal(t, "ball", g.Name)
}

func TestDecodeTypeMismatchFails(t *testing.T) {
	doc := store.RawDocument{
		ID:   "g1",
		Data: map[string]interface{}{"count": "not-a-number"},
	}

	var g gadget
	assert.Error(t, store.Decode(doc, &g))
}
