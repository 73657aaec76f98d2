// Package logging provides structured logging utilities for mailstash.
//
// It centralizes attribute naming so every package logs message IDs,
// filenames, and statuses under the same keys, using the standard library's
// slog package.
package logging
