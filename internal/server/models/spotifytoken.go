package models

import "time"

// SpotifyToken is the OAuth token pair obtained for a user at login. Both
// token strings are encrypted at rest.
type SpotifyToken struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
}
