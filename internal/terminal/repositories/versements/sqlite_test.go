package versements

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
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
CREATE TABLE versements (
  id TEXT PRIMARY KEY,
  employee_id TEXT NOT NULL,
  hammam_id TEXT NOT NULL,
  amount INTEGER NOT NULL,
  date INTEGER NOT NULL,
  synced_at INTEGER,
  sync_status TEXT NOT NULL DEFAULT 'pending',
  attempts INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)

	return db
}

func newVersement(id string, date time.Time) *models.Versement {
	return &models.Versement{ID: id, EmployeeID: "e1", HammamID: "h1", Amount: 5000, Date: date}
}

func TestInsert_Idempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	date := time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC)
	require.NoError(t, r.Insert(ctx, newVersement("v1", date)))
	require.NoError(t, r.Insert(ctx, newVersement("v1", date)))

	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM versements`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSyncLifecycle(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	date := time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC)
	require.NoError(t, r.Insert(ctx, newVersement("v1", date)))
	require.NoError(t, r.Insert(ctx, newVersement("v2", date.Add(time.Minute))))

	got, err := r.ListUnsynced(ctx, 10, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "v1", got[0].ID)

	require.NoError(t, r.MarkSynced(ctx, []string{"v1"}, date.Add(time.Hour)))
	require.NoError(t, r.MarkFailed(ctx, "v2"))

	got, err = r.ListUnsynced(ctx, 10, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "v2", got[0].ID)
	assert.Equal(t, models.SyncStatusFailed, got[0].SyncStatus)
	assert.Equal(t, 1, got[0].Attempts)

	// synced records never regress
	require.NoError(t, r.MarkFailed(ctx, "v1"))
	var status string
	require.NoError(t, db.QueryRow(`SELECT sync_status FROM versements WHERE id='v1'`).Scan(&status))
	assert.Equal(t, models.SyncStatusSynced, status)
}

func TestListUnsynced_ExcludesExhausted(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, newVersement("v1", time.Now())))
	for i := 0; i < 3; i++ {
		require.NoError(t, r.MarkFailed(ctx, "v1"))
	}

	got, err := r.ListUnsynced(ctx, 10, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}
