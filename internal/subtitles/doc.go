// Package subtitles models Advanced SubStation Alpha (ASS) caption documents
// and renders them to text. A document is a style definition plus an ordered
// list of timed cues; serialization is kept separate from construction so the
// model can be inspected and tested without string concatenation.
package subtitles
