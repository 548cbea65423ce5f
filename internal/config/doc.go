// Package config loads and validates tubedigest configuration.
//
// Configuration lives in a single TOML file (default
// ~/.config/tubedigest/config.toml). Load applies repository defaults,
// expands tilde paths, fills credentials from environment variables when
// the file omits them, and validates the result. Credentials for the
// text-generation and transcription APIs are required up front; email
// settings are checked only at send time so a missing Postmark setup
// never blocks a batch.
package config
