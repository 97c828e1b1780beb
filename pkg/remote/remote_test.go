package remote

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func backends(t *testing.T) map[string]func(t *testing.T) Collection {
	return map[string]func(t *testing.T) Collection{
		"memory": func(t *testing.T) Collection {
			return NewMemory("events")
		},
		"disk": func(t *testing.T) Collection {
			d, err := OpenDisk(t.TempDir(), "events")
			require.NoError(t, err)
			return d
		},
		"sqlite": func(t *testing.T) Collection {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "tally.db"), "events")
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		"http": func(t *testing.T) Collection {
			backing := NewMemory("events")
			srv := httptest.NewServer(NewRouter(func(name string) (Collection, error) {
				return backing, nil
			}, nil))
			t.Cleanup(srv.Close)
			return NewClient(srv.URL, "events", srv.Client())
		},
	}
}

func TestCollectionBehaviour(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := open(t)

			docs, err := c.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, docs)

			k1, err := c.Add(ctx, doc{ID: 5, Title: "first"})
			require.NoError(t, err)
			k2, err := c.Add(ctx, doc{ID: 7, Title: "second"})
			require.NoError(t, err)
			k3, err := c.Add(ctx, doc{ID: 5, Title: "again"})
			require.NoError(t, err)
			assert.NotEqual(t, k1, k2)

			docs, err = c.Get(ctx)
			require.NoError(t, err)
			require.Len(t, docs, 3)
			assert.Equal(t, []string{k1, k2, k3}, keys(docs))

			matches, err := c.Where("id", int64(5)).Get(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{k1, k3}, keys(matches))

			none, err := c.Where("id", 99).Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, none)

			require.NoError(t, c.Update(ctx, k2, map[string]any{"title": "renamed"}))
			docs, err = c.Get(ctx)
			require.NoError(t, err)
			var got doc
			require.NoError(t, docs[1].Decode(&got))
			assert.Equal(t, doc{ID: 7, Title: "renamed"}, got)

			require.NoError(t, c.Delete(ctx, k1))
			docs, err = c.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{k2, k3}, keys(docs))

			assert.ErrorIs(t, c.Delete(ctx, k1), ErrNotFound)
			assert.ErrorIs(t, c.Update(ctx, k1, map[string]any{"title": "x"}), ErrNotFound)
		})
	}
}

func TestDiskReopenKeepsOrder(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	d, err := OpenDisk(base, "events")
	require.NoError(t, err)
	k1, err := d.Add(ctx, doc{ID: 1})
	require.NoError(t, err)

	reopened, err := OpenDisk(base, "events")
	require.NoError(t, err)
	k2, err := reopened.Add(ctx, doc{ID: 2})
	require.NoError(t, err)

	docs, err := reopened.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{k1, k2}, keys(docs))
}

func TestDiskHandlesShareOrder(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	a, err := OpenDisk(base, "events")
	require.NoError(t, err)
	b, err := OpenDisk(base, "events")
	require.NoError(t, err)

	k5, err := a.Add(ctx, doc{ID: 5})
	require.NoError(t, err)
	k6, err := b.Add(ctx, doc{ID: 6})
	require.NoError(t, err)
	k7, err := a.Add(ctx, doc{ID: 7})
	require.NoError(t, err)

	fresh, err := OpenDisk(base, "events")
	require.NoError(t, err)
	docs, err := fresh.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{k5, k6, k7}, keys(docs))
}

func TestDiskReadsWritesFromOtherHandles(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	a, err := OpenDisk(base, "events")
	require.NoError(t, err)
	b, err := OpenDisk(base, "events")
	require.NoError(t, err)

	key, err := a.Add(ctx, doc{ID: 5, Title: "old"})
	require.NoError(t, err)
	_, err = a.Get(ctx)
	require.NoError(t, err)

	require.NoError(t, b.Update(ctx, key, map[string]any{"title": "new"}))

	docs, err := a.Get(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	var got doc
	require.NoError(t, json.Unmarshal(docs[0].Data, &got))
	assert.Equal(t, doc{ID: 5, Title: "new"}, got)
}

func TestFilterComparesJSONValues(t *testing.T) {
	docs := []Document{
		{Key: "a", Data: json.RawMessage(`{"id": 5.0}`)},
		{Key: "b", Data: json.RawMessage(`{"id":"5"}`)},
		{Key: "c", Data: json.RawMessage(`not json`)},
		{Key: "d", Data: json.RawMessage(`{"title":"x"}`)},
	}
	got, err := Filter(docs, "id", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, keys(got))
}

func TestMergeKeepsOtherFields(t *testing.T) {
	merged, err := Merge(json.RawMessage(`{"id":1,"title":"a","startDate":"s"}`), map[string]any{"title": "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"b","startDate":"s"}`, string(merged))
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := Open(Options{Backend: "ftp", Name: "events"})
	assert.Error(t, err)
	_, err = Open(Options{Backend: BackendHTTP, Name: "events"})
	assert.Error(t, err)
}

func TestMemoryWatchReportsWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewMemory("events")
	ch, err := m.Watch(ctx)
	require.NoError(t, err)

	_, err = m.Add(ctx, doc{ID: 1})
	require.NoError(t, err)
	select {
	case c := <-ch:
		assert.Equal(t, "events", c.Collection)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func keys(docs []Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Key)
	}
	return out
}
