// Package httpapi exposes the journal over a JSON REST API. Every journal
// route runs behind the session middleware, which resolves the caller from
// the accessToken cookie; user ids are never taken from request bodies.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/logging"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/musicjournal/internal/server/services"
	"golang.org/x/oauth2"
)

// MaxUploadSize bounds image uploads.
const MaxUploadSize = 10 << 20

type Journal interface {
	CreateEntry(ctx context.Context, userID string, in services.NewEntry) (*models.JournalEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID string, patch models.EntryPatch) error
	DeleteEntry(ctx context.Context, userID, entryID string) error
	ListEntries(ctx context.Context, userID string, order entries.Order) ([]models.JournalEntry, error)
	ListByTrack(ctx context.Context, userID, trackID string) ([]models.JournalEntry, error)
	AddTrack(ctx context.Context, t *models.Track) (string, error)
	GetTrack(ctx context.Context, id string) (*models.Track, error)
}

// Users resolves the session subject. A miss is (nil, nil).
type Users interface {
	GetUserByExternalID(ctx context.Context, id string) (*models.User, error)
}

type Spotify interface {
	AuthURL(state string) string
	Login(ctx context.Context, code string) (*models.User, error)
	AccessToken(ctx context.Context, userID string) (*oauth2.Token, error)
	Play(ctx context.Context, userID, trackURI, deviceID string) error
}

type Images interface {
	Upload(ctx context.Context, userID, name, contentType string, content []byte) (string, error)
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

// Limiter decides whether a user may make another request.
type Limiter interface {
	Allow(userID string) bool
}

// Deps bundles what the handlers need.
type Deps struct {
	Journal    Journal
	Users      Users
	Spotify    Spotify
	Images     Images
	Limiter    Limiter
	Logger     logging.Logger
	SecretKey  []byte
	SessionTTL time.Duration
	// SecureCookies marks cookies Secure; keep it on outside local development.
	SecureCookies bool
}

type Server struct {
	deps   Deps
	logger logging.Logger
	mux    *http.ServeMux
}

func NewServer(deps Deps) *Server {
	s := &Server{
		deps:   deps,
		logger: deps.Logger.With("module", "httpapi"),
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the root handler with recovery and access logging applied.
func (s *Server) Handler() http.Handler {
	return s.recoverer(s.accessLog(s.mux))
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /auth/callback", s.handleCallback)
	s.mux.Handle("GET /auth/token", s.authed(s.handleToken))

	s.mux.Handle("POST /track", s.authed(s.handleAddTrack))
	s.mux.Handle("GET /track/{trackId}", s.authed(s.handleGetTrack))

	s.mux.Handle("POST /journal", s.authed(s.handleCreateEntry))
	s.mux.Handle("GET /journal", s.authed(s.handleListEntries))
	s.mux.Handle("GET /journal/{trackId}", s.authed(s.handleListByTrack))
	s.mux.Handle("PUT /journal/{entryId}", s.authed(s.handleUpdateEntry))
	s.mux.Handle("DELETE /journal/{entryId}", s.authed(s.handleDeleteEntry))

	s.mux.Handle("PUT /play", s.authed(s.handlePlay))

	s.mux.Handle("POST /images/upload", s.authed(s.handleUpload))
	s.mux.Handle("GET /images/signed-url", s.authed(s.handleSignedURL))

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
