// Package repotest opens throwaway databases for repository tests.
package repotest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/musicjournal/internal/server/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// NewSQLite returns an in-memory SQLite database with foreign keys enforced
// and every migration applied. The pool is pinned to one connection so the
// whole test sees the same database.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, migrations.SQLiteDir))
	return db
}

// SeedUser inserts a user row directly, bypassing any repository.
func SeedUser(t *testing.T, db *sql.DB, id, email string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (user_id, username, email) VALUES (?, ?, ?)`, id, "user "+id, email)
	require.NoError(t, err)
}

// SeedTrack inserts a track row directly.
func SeedTrack(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO tracks (spotify_track_id, track_title, artist, album) VALUES (?, ?, ?, ?)`,
		id, "title "+id, "artist", "album")
	require.NoError(t, err)
}
