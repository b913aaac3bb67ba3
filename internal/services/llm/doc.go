// Package llm wraps an OpenRouter-compatible chat-completions API in
// JSON-response mode. The pipeline uses it once per run to turn the user's
// prompt into a structured scene script. Transient failures (timeouts, rate
// limits, empty completions) are retried with exponential backoff.
package llm
