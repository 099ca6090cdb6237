// Package config handles configuration for the journal server, including
// defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/cryptox"
)

// Config holds runtime settings for the music journal server.
//
// Fields:
//   - HTTPAddr: bind address of the REST API.
//   - DatabaseDSN: SQLite path (or :memory:), or a postgres:// URL.
//   - EncryptionKey: 64 hex characters; takes precedence over EncryptionPassphrase.
//   - EncryptionPassphrase / EncryptionSalt: argon2id input when no raw key is set.
//   - SecretKey: HMAC secret for signing session JWTs (HS256).
//   - SessionValidityDuration: lifetime of the accessToken cookie.
//   - RateLimitRPS / RateLimitBurst: per-user request rate and burst.
//   - Spotify*: OAuth application settings. SpotifyAPIBaseURL is only
//     overridden in tests.
//   - S3*: object storage settings for journal images.
type Config struct {
	HTTPAddr                string
	DatabaseDSN             string
	EncryptionKey           string
	EncryptionPassphrase    string
	EncryptionSalt          string
	SecretKey               string
	SessionValidityDuration time.Duration
	RateLimitRPS            float64
	RateLimitBurst          int
	SpotifyClientID         string
	SpotifyClientSecret     string
	SpotifyRedirectURL      string
	SpotifyAPIBaseURL       string
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
	LogLevel                string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
// No encryption key is set: one must be supplied.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.DatabaseDSN = "musicjournal.db"
	c.EncryptionSalt = "musicjournal"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 60 * time.Minute
	c.RateLimitRPS = 10
	c.RateLimitBurst = 20
	c.SpotifyRedirectURL = "http://127.0.0.1:8080/auth/callback"
	c.SpotifyAPIBaseURL = "https://api.spotify.com"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "journal"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.LogLevel = "info"
}

// Key returns the 32-byte encryption key: EncryptionKey decoded from hex, or
// derived from EncryptionPassphrase when no raw key is configured.
func (c *Config) Key() ([]byte, error) {
	switch {
	case c.EncryptionKey != "":
		return cryptox.ParseKey(c.EncryptionKey)
	case c.EncryptionPassphrase != "":
		return cryptox.DeriveKey([]byte(c.EncryptionPassphrase), []byte(c.EncryptionSalt)), nil
	default:
		return nil, fmt.Errorf("%w: no key or passphrase configured", common.ErrInvalidKey)
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if _, err := c.Key(); err != nil {
		return err
	}
	if c.SecretKey == "" {
		return fmt.Errorf("%w: empty JWT secret", common.ErrorValidation)
	}
	if c.SessionValidityDuration <= 0 {
		return fmt.Errorf("%w: session validity must be positive", common.ErrorValidation)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", common.ErrorValidation)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
