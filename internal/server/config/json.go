package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/musicjournal/internal/flagx"
	"github.com/dmitrijs2005/musicjournal/internal/timex"
	"gopkg.in/yaml.v3"
)

// JsonConfig is the on-disk shape of the configuration file, which may be
// JSON or, with a .yaml/.yml extension, YAML. Interval fields use
// timex.Duration, which accepts both "1h" strings and integer nanoseconds.
// After unmarshalling, set fields are copied into Config.
type JsonConfig struct {
	HTTPAddr                string         `json:"http_addr" yaml:"http_addr"`
	DatabaseDSN             string         `json:"database_dsn" yaml:"database_dsn"`
	EncryptionKey           string         `json:"encryption_key" yaml:"encryption_key"`
	EncryptionPassphrase    string         `json:"encryption_passphrase" yaml:"encryption_passphrase"`
	EncryptionSalt          string         `json:"encryption_salt" yaml:"encryption_salt"`
	SecretKey               string         `json:"secret_key" yaml:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration" yaml:"session_validity_duration"`
	RateLimitRPS            float64        `json:"rate_limit_rps" yaml:"rate_limit_rps"`
	RateLimitBurst          int            `json:"rate_limit_burst" yaml:"rate_limit_burst"`
	SpotifyClientID         string         `json:"spotify_client_id" yaml:"spotify_client_id"`
	SpotifyClientSecret     string         `json:"spotify_client_secret" yaml:"spotify_client_secret"`
	SpotifyRedirectURL      string         `json:"spotify_redirect_url" yaml:"spotify_redirect_url"`
	SpotifyAPIBaseURL       string         `json:"spotify_api_base_url" yaml:"spotify_api_base_url"`
	S3RootUser              string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel                string         `json:"log_level" yaml:"log_level"`
}

// parseJson loads the file named by -c or -config, if any, and overlays
// every field it sets onto config. Fields missing from the file keep their
// current value. An unreadable or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := unmarshalConfig(jsonConfigFile, file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.EncryptionKey, c.EncryptionKey)
	setString(&config.EncryptionPassphrase, c.EncryptionPassphrase)
	setString(&config.EncryptionSalt, c.EncryptionSalt)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.RateLimitRPS != 0 {
		config.RateLimitRPS = c.RateLimitRPS
	}
	if c.RateLimitBurst != 0 {
		config.RateLimitBurst = c.RateLimitBurst
	}
	setString(&config.SpotifyClientID, c.SpotifyClientID)
	setString(&config.SpotifyClientSecret, c.SpotifyClientSecret)
	setString(&config.SpotifyRedirectURL, c.SpotifyRedirectURL)
	setString(&config.SpotifyAPIBaseURL, c.SpotifyAPIBaseURL)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
}

func unmarshalConfig(path string, data []byte, c *JsonConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, c)
	default:
		return json.Unmarshal(data, c)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
