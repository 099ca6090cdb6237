package common

// AccessTokenCookieName is the cookie carrying the session JWT issued after
// a successful Spotify login.
const AccessTokenCookieName = "accessToken"

// OAuthStateCookieName holds the random state value between /auth/login and
// /auth/callback.
const OAuthStateCookieName = "oauthState"
