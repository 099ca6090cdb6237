// Package repomanager vends engine-specific repository implementations bound
// to a DBTX and runs the matching goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/musicjournal/internal/dbx"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/spotifytokens"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/tracks"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tracks(db dbx.DBTX) tracks.Repository
	Entries(db dbx.DBTX) entries.Repository
	SpotifyTokens(db dbx.DBTX) spotifytokens.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}
