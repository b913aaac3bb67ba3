// Package timeline converts raw word-level transcription timestamps into a
// conflict-free caption timeline: cue starts never precede the previous cue's
// end, every cue lasts at least the configured minimum, and the sequence is
// monotonic. The builder is pure and deterministic; it performs no I/O.
package timeline
