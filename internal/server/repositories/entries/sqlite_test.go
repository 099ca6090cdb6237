package entries

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db := repotest.NewSQLite(t)
	repotest.SeedUser(t, db, "u1", "u1@example.com")
	repotest.SeedUser(t, db, "u2", "u2@example.com")
	repotest.SeedTrack(t, db, "t1")
	repotest.SeedTrack(t, db, "t2")
	return db
}

func entry(id, user, track string, at time.Time) *models.JournalEntry {
	return &models.JournalEntry{
		EntryID: id, UserID: user, TrackID: track,
		EntryTitle: "title-" + id, EntryText: "text-" + id,
		CreatedAt: at, UpdatedAt: at,
	}
}

func TestSQLite_CreateAndList(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	cover := "cover-blob"
	e1 := entry("e1", "u1", "t1", t0)
	e1.JournalCover = &cover
	require.NoError(t, r.Create(ctx, e1))
	require.NoError(t, r.Create(ctx, entry("e2", "u1", "t2", t0.Add(time.Minute))))
	require.NoError(t, r.Create(ctx, entry("e3", "u1", "t1", t0.Add(-time.Hour))))
	require.NoError(t, r.Create(ctx, entry("e4", "u2", "t1", t0)))

	got, err := r.ListByTrack(ctx, "t1", "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].EntryID)
	assert.Equal(t, "e3", got[1].EntryID)
	require.NotNil(t, got[0].JournalCover)
	assert.Equal(t, "cover-blob", *got[0].JournalCover)
	assert.Nil(t, got[0].ImageURL)
	assert.True(t, got[0].CreatedAt.Equal(t0))

	all, err := r.ListByUser(ctx, "u1", OrderInserted)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2", "e3"}, ids(all))

	byCreated, err := r.ListByUser(ctx, "u1", OrderCreatedDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"e2", "e1", "e3"}, ids(byCreated))

	none, err := r.ListByTrack(ctx, "t2", "u2")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSQLite_Create_Constraints(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, entry("e1", "u1", "t1", t0)))

	err := r.Create(ctx, entry("e1", "u2", "t2", t0))
	require.ErrorIs(t, err, common.ErrDuplicate)

	err = r.Create(ctx, entry("e2", "ghost", "t1", t0))
	require.ErrorIs(t, err, common.ErrForeignKey)

	err = r.Create(ctx, entry("e3", "u1", "no-such-track", t0))
	require.ErrorIs(t, err, common.ErrForeignKey)
}

func TestSQLite_Update(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, entry("e1", "u1", "t1", t0)))
	later := t0.Add(time.Hour)

	err := r.Update(ctx, "e1", "u1", []Change{{Column: ColumnEntryText, Value: "new-text"}}, later)
	require.NoError(t, err)

	got, err := r.ListByUser(ctx, "u1", OrderInserted)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new-text", got[0].EntryText)
	assert.Equal(t, "title-e1", got[0].EntryTitle, "untouched column kept")
	assert.True(t, got[0].CreatedAt.Equal(t0))
	assert.True(t, got[0].UpdatedAt.Equal(later))

	err = r.Update(ctx, "e1", "u2", []Change{{Column: ColumnEntryText, Value: "hijack"}}, later)
	require.ErrorIs(t, err, common.ErrEntryNotFound)

	err = r.Update(ctx, "missing", "u1", []Change{{Column: ColumnEntryText, Value: "x"}}, later)
	require.ErrorIs(t, err, common.ErrEntryNotFound)

	err = r.Update(ctx, "e1", "u1", nil, later)
	require.ErrorIs(t, err, common.ErrEmptyPatch)
}

func TestSQLite_Update_SameValuesStillMatches(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, entry("e1", "u1", "t1", t0)))
	err := r.Update(ctx, "e1", "u1", []Change{{Column: ColumnEntryTitle, Value: "title-e1"}}, t0)
	require.NoError(t, err)
}

func TestSQLite_Delete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, entry("e1", "u1", "t1", t0)))

	require.ErrorIs(t, r.Delete(ctx, "e1", "u2"), common.ErrEntryNotFound)
	require.NoError(t, r.Delete(ctx, "e1", "u1"))
	require.ErrorIs(t, r.Delete(ctx, "e1", "u1"), common.ErrEntryNotFound)
}

func TestSQLite_OrderUpdatedDesc(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, entry("e1", "u1", "t1", t0)))
	require.NoError(t, r.Create(ctx, entry("e2", "u1", "t1", t0)))
	require.NoError(t, r.Update(ctx, "e1", "u1", []Change{{Column: ColumnEntryText, Value: "x"}}, t0.Add(time.Second)))

	got, err := r.ListByUser(ctx, "u1", OrderUpdatedDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2"}, ids(got))
}

func ids(es []models.JournalEntry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.EntryID)
	}
	return out
}
