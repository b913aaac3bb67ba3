// Package whisper wraps the external word-level transcription command and
// parses its JSON output into word observations for caption timing.
package whisper
