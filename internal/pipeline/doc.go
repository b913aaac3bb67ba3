// Package pipeline sequences a run from prompt to final video: script
// generation, parallel per-scene asset generation, transcription and caption
// building, sequential scene rendering, and lossless concatenation. It owns
// the run directory, run-history persistence, and aggregate failure
// handling.
package pipeline
