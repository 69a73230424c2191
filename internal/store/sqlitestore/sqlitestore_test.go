package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

func openTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tada.db")
	b, err := Open(p)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b, p
}

func TestOpenIsIdempotent(t *testing.T) {
	b, p := openTemp(t)
	require.NoError(t, b.Close())

	b2, err := Open(p)
	require.NoError(t, err)
	require.NoError(t, b2.Close())
}

func TestWriteUpsertsAndDeletes(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	b, _ := openTemp(t)

	items := []*model.Item{
		{ID: "a", Title: "A", SortIndex: 1},
		{ID: "b", Title: "B", SortIndex: 0},
	}
	require.NoError(t, b.Write(ctx, items, items, nil))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, model.IDs(got))

	items[0].Done = true
	items[0].Title = "A2"
	require.NoError(t, b.Write(ctx, items, items[:1], []string{"b"}))

	got, err = b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "A2", got[0].Title)
	require.True(t, got[0].Done)
}

func TestStoreSwapPersists(t *testing.T) {
	ctx := context.Background()
	b, p := openTemp(t)

	s, err := store.Open(ctx, b)
	require.NoError(t, err)
	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		it, err := s.Add(title)
		require.NoError(t, err)
		ids = append(ids, it.ID)
	}
	require.NoError(t, s.Commit())

	ra, _ := s.Record(ids[0])
	rc, _ := s.Record(ids[2])
	ra.SetSortIndex(2)
	rc.SetSortIndex(0)
	require.NoError(t, s.Commit())
	require.NoError(t, s.Close())

	b2, err := Open(p)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b2.Close() })
	s2, err := store.Open(ctx, b2)
	require.NoError(t, err)
	require.Equal(t, []string{ids[2], ids[1], ids[0]}, model.IDs(s2.Items()))
}
