package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/logging"
	"github.com/dmitrijs2005/musicjournal/internal/server/config"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/spotify"
)

// SpotifyScopes are requested at login. streaming is required by the Web
// Playback SDK.
var SpotifyScopes = []string{"streaming", "user-read-email", "user-read-private"}

// TokenStore persists the Spotify tokens of each user.
type TokenStore interface {
	SaveSpotifyToken(ctx context.Context, t *models.SpotifyToken) error
	GetSpotifyToken(ctx context.Context, userID string) (*models.SpotifyToken, error)
}

// Reconciler maps a Spotify profile onto a local user.
type Reconciler interface {
	Reconcile(ctx context.Context, id Identity) (*models.User, error)
}

// SpotifyService runs the OAuth code flow against Spotify and keeps the
// resulting tokens fresh for the playback SDK.
type SpotifyService struct {
	oauth    *oauth2.Config
	apiBase  string
	identity Reconciler
	tokens   TokenStore
	logger   logging.Logger
}

func NewSpotifyService(cfg *config.Config, identity Reconciler, tokens TokenStore, logger logging.Logger) *SpotifyService {
	return &SpotifyService{
		oauth: &oauth2.Config{
			ClientID:     cfg.SpotifyClientID,
			ClientSecret: cfg.SpotifyClientSecret,
			RedirectURL:  cfg.SpotifyRedirectURL,
			Endpoint:     spotify.Endpoint,
			Scopes:       SpotifyScopes,
		},
		apiBase:  strings.TrimSuffix(cfg.SpotifyAPIBaseURL, "/"),
		identity: identity,
		tokens:   tokens,
		logger:   logger.With("module", "spotify"),
	}
}

// AuthURL returns the Spotify authorize URL carrying state.
func (s *SpotifyService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

type spotifyProfile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Login exchanges an authorization code, reconciles the Spotify profile with
// the local users and stores the tokens. A rejected code matches
// common.ErrorUnauthorized.
func (s *SpotifyService) Login(ctx context.Context, code string) (*models.User, error) {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange: %v", common.ErrorUnauthorized, err)
	}

	var profile spotifyProfile
	if err := s.call(ctx, tok, http.MethodGet, "/v1/me", nil, &profile); err != nil {
		return nil, fmt.Errorf("error fetching profile: %w", err)
	}

	user, err := s.identity.Reconcile(ctx, Identity{ID: profile.ID, Email: profile.Email, DisplayName: profile.DisplayName})
	if err != nil {
		return nil, err
	}

	if err := s.saveToken(ctx, user.UserID, tok); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "spotify login", "user_id", user.UserID)
	return user, nil
}

// AccessToken returns a valid Spotify token for userID, refreshing and
// storing it first when the stored one has expired.
func (s *SpotifyService) AccessToken(ctx context.Context, userID string) (*oauth2.Token, error) {
	stored, err := s.tokens.GetSpotifyToken(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: no spotify session", common.ErrorUnauthorized)
		}
		return nil, err
	}

	current := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		TokenType:    stored.TokenType,
		Expiry:       stored.Expiry,
	}

	fresh, err := s.oauth.TokenSource(ctx, current).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: token refresh: %v", common.ErrorUnauthorized, err)
	}

	if fresh.AccessToken != current.AccessToken {
		if err := s.saveToken(ctx, userID, fresh); err != nil {
			return nil, err
		}
		s.logger.Debug(ctx, "spotify token refreshed", "user_id", userID)
	}
	return fresh, nil
}

// Play starts playback of trackURI on the user's active device, or on
// deviceID when it is not empty.
func (s *SpotifyService) Play(ctx context.Context, userID, trackURI, deviceID string) error {
	if trackURI == "" {
		return fmt.Errorf("%w: track uri is required", common.ErrorValidation)
	}

	tok, err := s.AccessToken(ctx, userID)
	if err != nil {
		return err
	}

	path := "/v1/me/player/play"
	if deviceID != "" {
		path += "?device_id=" + url.QueryEscape(deviceID)
	}

	body := map[string][]string{"uris": {trackURI}}
	return s.call(ctx, tok, http.MethodPut, path, body, nil)
}

func (s *SpotifyService) saveToken(ctx context.Context, userID string, tok *oauth2.Token) error {
	return s.tokens.SaveSpotifyToken(ctx, &models.SpotifyToken{
		UserID:       userID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.Type(),
		Expiry:       tok.Expiry.UTC(),
	})
}

// call sends an authorized request to the Web API. When out is not nil the
// JSON response is decoded into it.
func (s *SpotifyService) call(ctx context.Context, tok *oauth2.Token, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.apiBase+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: spotify %s %s: %d %s", common.ErrUpstream, method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", common.ErrUpstream, err)
	}
	return nil
}
