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

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Tracks(db dbx.DBTX) tracks.Repository {
	return tracks.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) SpotifyTokens(db dbx.DBTX) spotifytokens.Repository {
	return spotifytokens.NewPostgresRepository(db)
}

// RunMigrations applies the embedded postgres migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.PostgresDir)
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
