package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProvider marks failures of an external generation service
	// (script, image, speech, transcription): network, auth, rate limits.
	ErrProvider = errors.New("provider error")
	// ErrScriptParse marks a script payload that does not match the
	// expected structured shape.
	ErrScriptParse = errors.New("script parse error")
	// ErrInvalidInput marks malformed timing data handed to the timeline
	// builder or subtitle serializer.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingAsset marks an expected file that is absent before a
	// dependent stage runs.
	ErrMissingAsset = errors.New("missing asset")
	// ErrEncode marks a failure reported by the media encoder.
	ErrEncode = errors.New("encode error")
	// ErrConcat marks a failure during demuxer-level concatenation.
	ErrConcat = errors.New("concat error")
	// ErrEmptyInput marks an operation invoked with nothing to work on.
	ErrEmptyInput = errors.New("empty input")
	// ErrConfiguration marks invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrProvider
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

// Classify returns a short machine-readable label for the error's sentinel
// class, used when persisting run failures.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrScriptParse):
		return "script_parse"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrMissingAsset):
		return "missing_asset"
	case errors.Is(err, ErrEncode):
		return "encode"
	case errors.Is(err, ErrConcat):
		return "concat"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrProvider):
		return "provider"
	default:
		return "unknown"
	}
}
