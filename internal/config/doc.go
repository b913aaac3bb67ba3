// Package config loads, normalizes, and validates shortreel's TOML
// configuration.
//
// Configuration sections by subsystem:
//   - Paths: output, state, and log directories
//   - LLM: chat-completions connection for script generation
//   - Images: image-generation provider settings
//   - Speech: speech-synthesis provider settings
//   - Transcriber: local word-timestamp transcription tool
//   - Render: encoder binaries and output format constants
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
package config
