package sessions

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/common"
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
CREATE TABLE sessions (
  id TEXT PRIMARY KEY,
  employee_id TEXT NOT NULL,
  username TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  surname TEXT NOT NULL DEFAULT '',
  hammam_id TEXT NOT NULL,
  hammam_name TEXT NOT NULL DEFAULT '',
  hammam_name_ar TEXT NOT NULL DEFAULT '',
  ticket_prefix TEXT NOT NULL DEFAULT '',
  token TEXT NOT NULL,
  refresh_token TEXT NOT NULL,
  expires_at INTEGER NOT NULL,
  created_at INTEGER NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func testSession(id string) *models.Session {
	return &models.Session{
		ID:           id,
		EmployeeID:   "emp-1",
		Username:     "aicha",
		Name:         "Aicha",
		Surname:      "B",
		HammamID:     "h1",
		HammamName:   "Hammam Central",
		TicketPrefix: "HC",
		Token:        "tok-" + id,
		RefreshToken: "ref-" + id,
		ExpiresAt:    time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
		CreatedAt:    time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestSaveAndCurrent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, testSession("s1")))

	got, err := r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, "emp-1", got.EmployeeID)
	assert.Equal(t, "Hammam Central", got.HammamName)
	assert.Equal(t, "HC", got.TicketPrefix)
	assert.Equal(t, int64(time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC).Unix()), got.ExpiresAt.Unix())
}

func TestSave_ReplacesPrevious(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, testSession("s1")))
	require.NoError(t, r.Save(ctx, testSession("s2")))

	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM sessions`).Scan(&n))
	assert.Equal(t, 1, n)

	got, err := r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s2", got.ID)
}

func TestCurrent_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.Current(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateTokens(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, testSession("s1")))

	newExpiry := time.Date(2026, 2, 10, 13, 0, 0, 0, time.UTC).Unix()
	require.NoError(t, r.UpdateTokens(ctx, "tok-new", "ref-new", newExpiry))

	got, err := r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-new", got.Token)
	assert.Equal(t, "ref-new", got.RefreshToken)
	assert.Equal(t, newExpiry, got.ExpiresAt.Unix())
	// identity fields survive the token swap
	assert.Equal(t, "emp-1", got.EmployeeID)
}

func TestClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, testSession("s1")))
	require.NoError(t, r.Clear(ctx))

	_, err := r.Current(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
