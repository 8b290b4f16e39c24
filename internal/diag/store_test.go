package diag

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"chatlist/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "nested", "diag.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStoreRequiresPath(t *testing.T) {
	_, err := NewStore("")
	assert.Error(t, err)
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 7, 5, 12, 0, 0, 0, time.UTC)

	for i, op := range []string{"list", "create", "delete"} {
		require.NoError(t, s.RecordFailure(ctx, gateway.Failure{
			Op:      op,
			Target:  "t",
			Status:  500 + i,
			Message: "boom",
			At:      base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "delete", entries[0].Op)
	assert.Equal(t, "create", entries[1].Op)
	assert.Equal(t, "list", entries[2].Op)
	assert.Equal(t, 502, entries[0].Status)
	assert.True(t, entries[0].At.Equal(base.Add(2*time.Minute)))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRecentHonoursLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < DefaultLimit+5; i++ {
		require.NoError(t, s.RecordFailure(ctx, gateway.Failure{Op: "list", Message: "x"}))
	}

	entries, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Greater(t, entries[0].ID, entries[1].ID)

	entries, err = s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultLimit)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.RecordFailure(context.Background(), gateway.Failure{Op: "update", Target: "7", Message: "x"}))
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())

	entries, err := s.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "7", entries[0].Target)
}

func TestGatewayRecordsIntoStore(t *testing.T) {
	s := newTestStore(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := gateway.NewClient(srv.URL, gateway.WithRecorder(s)).Delete(context.Background(), "4")
	require.Error(t, err)

	entries, err := s.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, gateway.OpDelete, entries[0].Op)
	assert.Equal(t, "4", entries[0].Target)
	assert.Equal(t, http.StatusServiceUnavailable, entries[0].Status)
}
