// Package digest assembles the per-run email from processed video records.
//
// One message covers the whole batch: a plain text body listing each
// channel and summary, and an HTML body built from an embedded template
// with one card per video. Markdown summaries are converted to HTML via
// the model; a mechanical escape keeps the email usable when that fails.
package digest
