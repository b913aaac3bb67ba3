package timeline

import (
	"fmt"

	"shortreel/internal/services"
)

// Word is one transcribed word with raw start/end timestamps in seconds, as
// produced by the speech-to-text provider. The provider orders words by start
// time but that ordering is not guaranteed.
type Word struct {
	Text  string
	Start float64
	End   float64
}

// Cue is one caption with adjusted, non-overlapping timing.
type Cue struct {
	Text  string
	Start float64
	End   float64
}

// Duration returns the cue length in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// epsilon separates adjacent cues so a word never begins before the previous
// word ended.
const epsilon = 0.01

// Build produces a conflict-free cue sequence from raw word timestamps in a
// single left-to-right pass.
//
// For each word, the start is clamped past the previous cue's end, the end is
// extended to satisfy minDuration, and the end is pulled back before the next
// word's raw start when that clamp still leaves at least minDuration. When the
// gap to the next word is too small for the minimum duration, the extension
// wins and the collision is resolved by clamping the next word's start
// instead, so a cue can never end before it starts.
//
// An empty input yields an empty, error-free result: a scene with no words is
// a valid zero-caption scene.
func Build(words []Word, minDuration float64) ([]Cue, error) {
	if len(words) == 0 {
		return nil, nil
	}
	if minDuration <= 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "timeline", "build", fmt.Sprintf("minimum duration must be positive, got %g", minDuration), nil)
	}
	for i, word := range words {
		if word.End < word.Start {
			return nil, services.Wrap(services.ErrInvalidInput, "timeline", "build",
				fmt.Sprintf("word %d %q ends before it starts (%.3f < %.3f)", i, word.Text, word.End, word.Start), nil)
		}
	}

	cues := make([]Cue, 0, len(words))
	lastEnd := 0.0
	for i, word := range words {
		start := word.Start
		if start < lastEnd {
			start = lastEnd + epsilon
		}

		end := word.End
		if end-start < minDuration {
			end = start + minDuration
		}
		if i+1 < len(words) && end >= words[i+1].Start {
			clamped := words[i+1].Start - epsilon
			if clamped-start >= minDuration {
				end = clamped
			}
		}
		if end <= start {
			end = start + epsilon
		}

		cues = append(cues, Cue{Text: word.Text, Start: start, End: end})
		lastEnd = end
	}
	return cues, nil
}
