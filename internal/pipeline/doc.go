// Package pipeline runs a single video through the processing stages:
// audio download, transcription, bullet point extraction, and newsletter
// summarization.
//
// Each stage's text artifact is persisted as it is produced so a later run
// can inspect intermediate output. Failures are captured in the returned
// Outcome rather than propagated; the batch scheduler decides what to do
// with them. Downloaded audio is removed before Process returns regardless
// of which stage it reached.
package pipeline
