package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// AuthError indicates that the OAuth2 flow or a token refresh failed.
// It is fatal: no processing can happen without valid credentials.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("google auth: %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewHTTPClient returns an HTTP client that authenticates requests with
// OAuth2 credentials for the configured scopes.
//
// The client descriptor is read from clientSecretPath. Tokens are cached as
// JSON at tokenCachePath; when no usable token is cached the installed-app
// consent flow runs, printing the authorization URL and reading the code
// from stdin. Refreshed tokens are written back to the cache so the next
// run can skip the consent flow.
func NewHTTPClient(ctx context.Context, clientSecretPath, tokenCachePath string) (*http.Client, error) {
	b, err := os.ReadFile(clientSecretPath)
	if err != nil {
		return nil, &AuthError{Op: "read client secret file", Err: err}
	}

	conf, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, &AuthError{Op: "parse client secret file", Err: err}
	}

	tok, err := tokenFromFile(tokenCachePath)
	if err != nil {
		tok, err = tokenFromConsentFlow(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenCachePath, tok); err != nil {
			return nil, err
		}
	}

	ts := &persistingTokenSource{
		path: tokenCachePath,
		base: conf.TokenSource(ctx, tok),
		last: tok,
	}

	// Fail now if the cached token cannot be refreshed, rather than on the
	// first API call.
	if _, err := ts.Token(); err != nil {
		return nil, &AuthError{Op: "refresh token", Err: err}
	}

	return oauth2.NewClient(ctx, ts), nil
}

// persistingTokenSource writes tokens back to the cache file whenever the
// underlying source hands out a new one.
type persistingTokenSource struct {
	path string
	base oauth2.TokenSource
	last *oauth2.Token
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		if err := saveToken(s.path, tok); err != nil {
			return nil, err
		}
		s.last = tok
	}
	return tok, nil
}

func tokenFromConsentFlow(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, &AuthError{Op: "read authorization code", Err: err}
	}

	tok, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return nil, &AuthError{Op: "exchange authorization code", Err: err}
	}
	return tok, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token file %s: %w", path, err)
	}
	if tok.RefreshToken == "" && !tok.Valid() {
		return nil, fmt.Errorf("token file %s holds no usable token", path)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return &AuthError{Op: "create token cache directory", Err: err}
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return &AuthError{Op: "open token cache file", Err: err}
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return &AuthError{Op: "write token cache file", Err: err}
	}
	return nil
}
