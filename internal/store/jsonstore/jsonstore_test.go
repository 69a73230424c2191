package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	b, err := New(filepath.Join(t.TempDir(), "todos.json"))
	require.NoError(t, err)
	items, err := b.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestLoadRejectsGarbage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(p, []byte("{nope"), 0o644))
	b, err := New(p)
	require.NoError(t, err)
	_, err = b.Load(context.Background())
	require.ErrorContains(t, err, "json unmarshal")
}

func TestWriteRoundTripsInSortOrder(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "todos.json")
	b, err := New(p)
	require.NoError(t, err)
	require.Equal(t, p, b.Path())

	all := []*model.Item{
		{ID: "2", Title: "second", SortIndex: 1},
		{ID: "1", Title: "first", SortIndex: 0, Done: true},
	}
	require.NoError(t, b.Write(context.Background(), all, nil, nil))

	got, err := b.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, model.IDs(got))
	require.True(t, got[0].Done)
}

func TestStoreSortIndexSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "todos.json")
	b, err := New(p)
	require.NoError(t, err)

	s, err := store.Open(ctx, b)
	require.NoError(t, err)
	a, err := s.Add("A")
	require.NoError(t, err)
	c, err := s.Add("C")
	require.NoError(t, err)
	require.NoError(t, s.Commit())

	ra, _ := s.Record(a.ID)
	rc, _ := s.Record(c.ID)
	ra.SetSortIndex(1)
	rc.SetSortIndex(0)
	require.NoError(t, s.Commit())

	s2, err := store.Open(ctx, b)
	require.NoError(t, err)
	require.Equal(t, []string{c.ID, a.ID}, model.IDs(s2.Items()))
}

func TestLegacyFileIsUpgraded(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "todos.json")
	legacy := `[{"title":"Buy milk","done":false},{"title":"Walk dog","done":true}]`
	require.NoError(t, os.WriteFile(p, []byte(legacy), 0o644))

	b, err := New(p)
	require.NoError(t, err)
	s, err := store.Open(ctx, b)
	require.NoError(t, err)
	require.NoError(t, s.Commit())

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Buy milk", got[0].Title)
	require.NotEmpty(t, got[0].ID)
	require.Equal(t, 1, got[1].SortIndex)
}
