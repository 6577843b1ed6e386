package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparin/internal/store"
	"sparin/internal/store/memstore"
	"sparin/pkg/errors"
)

type gadget struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (g *gadget) DocumentID() string      { return g.ID }
func (g *gadget) SetDocumentID(id string) { g.ID = id }

func TestCreateAssignsGeneratedID(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	g := &gadget{Name: "ball"}
	id, err := store.Create(ctx, s, "gadgets", g)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, g.ID)

	got, err := store.Get[gadget](ctx, s, "gadgets", id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ball", got.Name)
	assert.Equal(t, id, got.ID)
}

func TestCreateKeepsCallerAssignedID(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	g := &gadget{ID: "fixed", Name: "net"}
	id, err := store.Create(ctx, s, "gadgets", g)
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
}

func TestCreateWithIDReplacesExisting(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "g1", &gadget{Name: "old", Count: 3}))
	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "g1", &gadget{Name: "new"}))

	got, err := store.Get[gadget](ctx, s, "gadgets", "g1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
	// Full replace, not merge.
	assert.Equal(t, 0, got.Count)
}

func TestGetAbsentIsNotAnError(t *testing.T) {
	s := memstore.New()

	got, err := store.Get[gadget](context.Background(), s, "gadgets", "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMergesFields(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "g1", &gadget{Name: "ball", Count: 1}))
	require.NoError(t, store.Update(ctx, s, "gadgets", "g1", map[string]interface{}{"count": 5}))

	got, err := store.Get[gadget](ctx, s, "gadgets", "g1")
	require.NoError(t, err)
	assert.Equal(t, "ball", got.Name)
	assert.Equal(t, 5, got.Count)
}

func TestUpdateAbsentIsNotFound(t *testing.T) {
	s := memstore.New()

	err := store.Update(context.Background(), s, "gadgets", "nope", map[string]interface{}{"count": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "g1", &gadget{Name: "ball"}))
	assert.NoError(t, store.Delete(ctx, s, "gadgets", "g1"))
	assert.NoError(t, store.Delete(ctx, s, "gadgets", "g1"))

	got, err := store.Get[gadget](ctx, s, "gadgets", "g1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListSkipsUndecodableDocuments(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "good", &gadget{Name: "ball"}))
	s.Seed("gadgets", "bad", map[string]interface{}{"count": "not-a-number"})

	list, err := store.List[gadget](ctx, s, "gadgets")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "good", list[0].ID)
}

func TestQueryFiltersByEquality(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "g1", &gadget{Name: "ball"}))
	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "g2", &gadget{Name: "net"}))
	require.NoError(t, store.CreateWithID(ctx, s, "gadgets", "g3", &gadget{Name: "ball"}))

	list, err := store.Query[gadget](ctx, s, "gadgets", "name", "ball")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, g := range list {
		assert.Equal(t, "ball", g.Name)
	}
}

func TestStoreFaultSurfacesAsStoreFault(t *testing.T) {
	s := memstore.New()
	s.Fail(assert.AnError)

	_, err := store.Get[gadget](context.Background(), s, "gadgets", "g1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "STORE_FAULT"))

	_, err = store.List[gadget](context.Background(), s, "gadgets")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "STORE_FAULT"))
}
