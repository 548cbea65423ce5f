// Package logging builds the slog loggers used across tubedigest.
//
// Two output formats exist: a compact single-line console format for
// interactive and cron use, and JSON for log aggregation. Attr helper
// functions keep call sites terse and standardize shared keys (run ID,
// source, video ID, stage) so a whole batch can be traced from logs.
package logging
