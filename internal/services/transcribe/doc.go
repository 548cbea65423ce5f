// Package transcribe provides a client for OpenAI-compatible audio
// transcription endpoints.
package transcribe
