// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The pipeline uses it to measure audio durations before rendering and to
// verify rendered clip durations afterwards. Inspect shells out to ffprobe;
// the parsing helpers are pure and unit-testable.
package ffprobe
