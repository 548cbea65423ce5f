// Package docstore persists the text artifacts produced per video:
// transcript, bullet points, and summary. Files are namespaced by source
// and video ID so concurrent pipelines never contend on a path.
package docstore
