package httpapi

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/server/auth"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

const stateCookieTTL = 10 * time.Minute

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := common.MakeRandHexString(16)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.OAuthStateCookieName,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.deps.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.deps.Spotify.AuthURL(state), http.StatusFound)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		writeError(w, http.StatusUnauthorized, "login declined: "+e)
		return
	}

	c, err := r.Cookie(common.OAuthStateCookieName)
	state := q.Get("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(c.Value), []byte(state)) != 1 {
		writeError(w, http.StatusBadRequest, "state mismatch")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: common.OAuthStateCookieName, Path: "/auth", MaxAge: -1})

	user, err := s.deps.Spotify.Login(r.Context(), q.Get("code"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	token, err := auth.GenerateToken(user.UserID, s.deps.SecretKey, s.deps.SessionTTL)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.deps.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.deps.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

type tokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request, user *models.User) {
	tok, err := s.deps.Spotify.AccessToken(r.Context(), user.UserID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: tok.AccessToken, ExpiresAt: tok.Expiry})
}

type playRequest struct {
	TrackURI string `json:"trackURI"`
	DeviceID string `json:"deviceID"`
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req playRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.deps.Spotify.Play(r.Context(), user.UserID, req.TrackURI, req.DeviceID); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
