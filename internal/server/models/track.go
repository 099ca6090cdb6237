package models

// Track is song metadata keyed by its Spotify track id. Tracks are created
// lazily and never change afterwards.
type Track struct {
	SpotifyTrackID string `json:"spotifyTrackID"`
	TrackTitle     string `json:"trackTitle"`
	Artist         string `json:"artist"`
	Album          string `json:"album"`
}
