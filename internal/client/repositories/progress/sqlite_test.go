package progress

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE draft_progress (
  id         INTEGER PRIMARY KEY CHECK (id = 1),
  stage      TEXT    NOT NULL,
  order_id   TEXT    NOT NULL,
  expires_at INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestGet_Empty_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	m, err := r.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestSaveAndGet_RoundTrip(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, r.Save(ctx, &Marker{Stage: "files", OrderID: "ord-1", ExpiresAt: exp}))

	m, err := r.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "files", m.Stage)
	assert.Equal(t, "ord-1", m.OrderID)
	assert.True(t, m.ExpiresAt.Equal(exp))
}

func TestSave_ReplacesPreviousMarker(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, r.Save(ctx, &Marker{Stage: "files", OrderID: "ord-1", ExpiresAt: exp}))
	require.NoError(t, r.Save(ctx, &Marker{Stage: "ranges", OrderID: "ord-1", ExpiresAt: exp}))

	m, err := r.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "ranges", m.Stage)
}

func TestGet_ExpiredMarkerIsHidden(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, &Marker{
		Stage:     "files",
		OrderID:   "ord-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	r.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	m, err := r.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestClear_RemovesMarker_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, &Marker{
		Stage:     "files",
		OrderID:   "ord-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, r.Clear(ctx))
	require.NoError(t, r.Clear(ctx))

	m, err := r.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, m)
}
