package spotifytokens

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_SaveFindDelete(t *testing.T) {
	db := repotest.NewSQLite(t)
	repotest.SeedUser(t, db, "u1", "u1@example.com")
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	exp := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.Save(ctx, &models.SpotifyToken{UserID: "u1", AccessToken: "a1", RefreshToken: "r1", TokenType: "Bearer", Expiry: exp}))

	got, err := r.Find(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.AccessToken)
	assert.Equal(t, "r1", got.RefreshToken)
	assert.True(t, got.Expiry.Equal(exp))

	// rotation without a new refresh token clears it
	require.NoError(t, r.Save(ctx, &models.SpotifyToken{UserID: "u1", AccessToken: "a2", TokenType: "Bearer", Expiry: exp.Add(time.Hour)}))
	got, err = r.Find(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a2", got.AccessToken)
	assert.Empty(t, got.RefreshToken)

	require.NoError(t, r.Delete(ctx, "u1"))
	_, err = r.Find(ctx, "u1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_Save_UnknownUser(t *testing.T) {
	db := repotest.NewSQLite(t)
	r := NewSQLiteRepository(db)

	err := r.Save(context.Background(), &models.SpotifyToken{UserID: "ghost", AccessToken: "a", TokenType: "Bearer", Expiry: time.Now()})
	require.ErrorIs(t, err, common.ErrForeignKey)
}
