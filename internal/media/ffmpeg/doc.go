// Package ffmpeg drives the external media engine for the two encode
// operations the pipeline needs: rendering a still image plus narration
// (and optionally burned captions) into a fixed-format vertical clip, and
// demuxer-level concatenation of finished clips without re-encoding.
//
// The engine is modeled as a singleton resource: a file lock in the state
// directory serializes encode jobs, so at most one ffmpeg invocation runs at
// a time even across concurrent shortreel processes.
package ffmpeg
