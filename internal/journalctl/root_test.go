package journalctl

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/cryptox"
	"github.com/dmitrijs2005/musicjournal/internal/logging"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("MUSICJOURNAL_KEY", "")

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func seed(t *testing.T, dsn string, key []byte) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, dsn, key, logging.Discard())
	require.NoError(t, err)
	defer st.Close()

	_, err = st.AddUser(ctx, &models.User{UserID: "alice", Username: "Alice", Email: "a@x.com"})
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cover := "sunset"
	_, err = st.AddTrackAndEntry(ctx,
		&models.Track{SpotifyTrackID: "t1", TrackTitle: "Song"},
		&models.JournalEntry{EntryID: "e1", UserID: "alice", TrackID: "t1", JournalCover: &cover,
			EntryTitle: "first", EntryText: "hello", CreatedAt: now})
	require.NoError(t, err)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "journalctl", cmd.Use)

	for _, name := range []string{"migrate", "keygen", "export"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	dsn := cmd.PersistentFlags().Lookup("dsn")
	require.NotNil(t, dsn)
	assert.Equal(t, "d", dsn.Shorthand)
	assert.Equal(t, "musicjournal.db", dsn.DefValue)
}

func TestKeygen(t *testing.T) {
	out, _, err := execute(t, "keygen")
	require.NoError(t, err)

	key := strings.TrimSpace(out)
	assert.Len(t, key, 2*cryptox.KeySize)
	_, err = hex.DecodeString(key)
	require.NoError(t, err)

	_, err = cryptox.ParseKey(key)
	assert.NoError(t, err)
}

func TestMigrate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "journal.db")

	out, _, err := execute(t, "migrate", "-d", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date")

	_, err = os.Stat(dsn)
	require.NoError(t, err)

	_, _, err = execute(t, "migrate", "-d", dsn)
	require.NoError(t, err)

	_, _, err = execute(t, "migrate", "-d", dsn, "-k", "abc")
	require.ErrorIs(t, err, common.ErrInvalidKey)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "journal.db")
	key, err := cryptox.ParseKey(testKeyHex)
	require.NoError(t, err)
	seed(t, dsn, key)

	out, _, err := execute(t, "export", "alice", "-d", dsn, "-k", testKeyHex)
	require.NoError(t, err)

	var doc Export
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "a@x.com", doc.User.Email)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "hello", doc.Entries[0].EntryText)
	require.NotNil(t, doc.Entries[0].JournalCover)
	assert.Equal(t, "sunset", *doc.Entries[0].JournalCover)

	file := filepath.Join(dir, "out.json")
	_, _, err = execute(t, "export", "alice", "-d", dsn, "-k", testKeyHex, "-o", file)
	require.NoError(t, err)
	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"entryText": "hello"`)
}

func TestExport_Golden(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "journal.db")
	key, err := cryptox.ParseKey(testKeyHex)
	require.NoError(t, err)
	seed(t, dsn, key)

	out, _, err := execute(t, "export", "alice", "-d", dsn, "-k", testKeyHex)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export_alice", []byte(out))
}

func TestExport_Errors(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "journal.db")
	key, err := cryptox.ParseKey(testKeyHex)
	require.NoError(t, err)
	seed(t, dsn, key)

	_, _, err = execute(t, "export", "alice", "-d", dsn)
	require.ErrorIs(t, err, common.ErrInvalidKey)

	_, _, err = execute(t, "export", "bob", "-d", dsn, "-k", testKeyHex)
	require.ErrorIs(t, err, common.ErrorNotFound)

	other := strings.Repeat("ff", cryptox.KeySize)
	_, _, err = execute(t, "export", "alice", "-d", dsn, "-k", other)
	require.ErrorIs(t, err, common.ErrDecryption)

	_, _, err = execute(t, "export", "-d", dsn, "-k", testKeyHex)
	require.Error(t, err)
}

func TestExport_Passphrase(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	dsn := filepath.Join(t.TempDir(), "journal.db")
	seed(t, dsn, cryptox.DeriveKey([]byte("correct horse"), []byte("musicjournal")))

	readPassword = func(int) ([]byte, error) { return []byte("correct horse"), nil }
	out, errOut, err := execute(t, "export", "alice", "-d", dsn, "-p")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Enter passphrase:")
	assert.Contains(t, out, `"hello"`)

	readPassword = func(int) ([]byte, error) { return nil, nil }
	_, _, err = execute(t, "export", "alice", "-d", dsn, "-p")
	require.ErrorIs(t, err, common.ErrInvalidKey)

	boom := errors.New("no tty")
	readPassword = func(int) ([]byte, error) { return nil, boom }
	_, _, err = execute(t, "export", "alice", "-d", dsn, "-p")
	require.ErrorIs(t, err, boom)
}
