package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesMarker(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrProvider, "assets", "synthesize speech", "scene 2", cause)
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected wrapped error to match ErrProvider, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped error to retain cause, got %v", err)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrEmptyInput, "concat", "", "no clips", nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	want := "empty input: concat: no clips"
	if err.Error() != want {
		t.Fatalf("unexpected message %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", errors.New("boom"))
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected nil marker to default to ErrProvider, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{Wrap(ErrScriptParse, "script", "parse", "", nil), "script_parse"},
		{Wrap(ErrEncode, "render", "ffmpeg", "", errors.New("exit 1")), "encode"},
		{Wrap(ErrConcat, "concat", "", "", nil), "concat"},
		{Wrap(ErrMissingAsset, "render", "", "image0.jpg", nil), "missing_asset"},
		{errors.New("anything"), "unknown"},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Fatalf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
