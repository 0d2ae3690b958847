package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/snip/internal/config"
	"github.com/hpungsan/snip/internal/snippet"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := Init(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestStore_LoadEmpty(t *testing.T) {
	st := newTestStore(t)

	got, err := st.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	st := newTestStore(t)
	created := time.Date(2026, 5, 6, 7, 8, 9, 123000000, time.UTC)

	// Ids deliberately out of order: Load must follow insertion position.
	in := []snippet.Snippet{
		{ID: 3, Title: "c", Code: "x\ny", Language: "go", Tags: []string{"a", "b"}, Category: "General", CreatedAt: created},
		{ID: 1, Title: "a", Code: "", Language: "javascript", Tags: []string{}, Category: "React", Description: "d", CreatedAt: created},
	}

	require.NoError(t, st.Save(context.Background(), in))

	out, err := st.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestStore_SaveReplacesAll(t *testing.T) {
	st := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	first := []snippet.Snippet{
		{ID: 1, Title: "a", Language: "go", Tags: []string{}, Category: "General", CreatedAt: now},
		{ID: 2, Title: "b", Language: "go", Tags: []string{}, Category: "General", CreatedAt: now},
	}
	require.NoError(t, st.Save(context.Background(), first))
	require.NoError(t, st.Save(context.Background(), first[:1]))

	out, err := st.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "a", out[0].Title)
}

func TestStore_SaveNilTags(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Save(context.Background(), []snippet.Snippet{
		{ID: 1, Title: "a", Language: "go", Category: "General", CreatedAt: time.Unix(0, 0).UTC()},
	}))

	out, err := st.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{}, out[0].Tags)
}

func TestStore_DuplicateIDRollsBack(t *testing.T) {
	st := newTestStore(t)
	now := time.Unix(0, 0).UTC()

	require.NoError(t, st.Save(context.Background(), []snippet.Snippet{
		{ID: 1, Title: "kept", Language: "go", Tags: []string{}, Category: "General", CreatedAt: now},
	}))

	err := st.Save(context.Background(), []snippet.Snippet{
		{ID: 1, Title: "a", Language: "go", Tags: []string{}, Category: "General", CreatedAt: now},
		{ID: 1, Title: "b", Language: "go", Tags: []string{}, Category: "General", CreatedAt: now},
	})
	require.Error(t, err)

	out, err := st.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "kept", out[0].Title)
}

func TestConfigurePool(t *testing.T) {
	database, err := Init(t.TempDir())
	require.NoError(t, err)
	defer database.Close()

	ConfigurePool(database, nil)
	ConfigurePool(database, &config.Config{DBMaxOpenConns: 1, DBMaxIdleConns: 1})
	require.Equal(t, 1, database.Stats().MaxOpenConnections)
}
