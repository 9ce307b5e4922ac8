package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wsi-annotator/backend/internal/geometry"
)

func newTestStore(t *testing.T) *DuckStore {
	t.Helper()
	store, err := NewDuckStoreAtPath(filepath.Join(t.TempDir(), "test.duckdb"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDuckStoreCRUD(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("roi", "first pass", []geometry.Element{
		{ID: "p1", Type: geometry.TypePoint, Center: []float64{10, 20, 0}},
		{ID: "r1", Type: geometry.TypeRectangle, Center: []float64{0, 0, 0}, Width: 4, Height: 2},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "roi", got.Name)
	require.Len(t, got.Elements, 2)
	assert.Equal(t, geometry.TypeRectangle, got.Elements[1].Type)
	assert.Equal(t, 4.0, got.Elements[1].Width)

	updated, err := store.Update(created.ID, "roi-v2", "", []geometry.Element{})
	require.NoError(t, err)
	assert.Equal(t, "roi-v2", updated.Name)
	assert.Empty(t, updated.Elements)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	list, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].ElementCount)

	require.NoError(t, store.Delete(created.ID))
	_, err = store.Get(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuckStoreNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Update("missing", "x", "", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete("missing"), ErrNotFound)
}

func TestDuckStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.duckdb")

	store, err := NewDuckStoreAtPath(path)
	require.NoError(t, err)
	created, err := store.Create("kept", "", []geometry.Element{
		{Type: geometry.TypeCircle, Center: []float64{5, 5, 0}, Radius: 3},
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewDuckStoreAtPath(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Name)
	require.Len(t, got.Elements, 1)
	assert.Equal(t, 3.0, got.Elements[0].Radius)
}
