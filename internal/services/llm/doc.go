// Package llm provides a client for OpenAI-compatible chat completion
// endpoints with bounded retry and backoff.
package llm
