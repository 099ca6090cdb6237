package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/musicjournal/internal/dbx"
	"github.com/dmitrijs2005/musicjournal/internal/server/migrations"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/spotifytokens"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/tracks"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLiteRepositoryManager vends SQLite-backed repositories. The database
// handle must have foreign key enforcement switched on.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Tracks(db dbx.DBTX) tracks.Repository {
	return tracks.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) SpotifyTokens(db dbx.DBTX) spotifytokens.Repository {
	return spotifytokens.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.SQLiteDir)
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}
