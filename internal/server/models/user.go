// Package models defines the records persisted by the server.
package models

// User is a journal owner. UserID is the external (Spotify) account id and
// Email is unique across users.
type User struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
