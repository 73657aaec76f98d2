// Package google handles OAuth2 authentication against Google APIs.
//
// It owns the credential lifecycle for the whole tool: parsing the client
// descriptor JSON, running the installed-app consent flow on first use,
// caching the token pair on disk, and transparently persisting refreshed
// tokens. Other packages only ever see an authenticated *http.Client.
package google
