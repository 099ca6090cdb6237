package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN (SQLite path or postgres:// URL)
//	-k string   encryption key, 64 hex characters
//	-K string   encryption passphrase
//	-s string   JWT HMAC secret key
//	-t int      session validity, minutes
//	-l float    per-user rate limit, requests per second
//	-i string   Spotify client id
//	-x string   Spotify client secret
//	-r string   Spotify redirect URL
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config loader.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-k", "-K", "-s", "-t", "-l", "-i", "-x", "-r", "-u", "-p", "-b", "-g", "-e",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.EncryptionKey, "k", config.EncryptionKey, "encryption key (hex)")
	fs.StringVar(&config.EncryptionPassphrase, "K", config.EncryptionPassphrase, "encryption passphrase")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session_validity_duration (in minutes)")
	fs.Float64Var(&config.RateLimitRPS, "l", config.RateLimitRPS, "rate limit (requests per second per user)")

	fs.StringVar(&config.SpotifyClientID, "i", config.SpotifyClientID, "Spotify client id")
	fs.StringVar(&config.SpotifyClientSecret, "x", config.SpotifyClientSecret, "Spotify client secret")
	fs.StringVar(&config.SpotifyRedirectURL, "r", config.SpotifyRedirectURL, "Spotify redirect URL")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
}
