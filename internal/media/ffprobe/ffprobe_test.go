package ffprobe

import "testing"

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1080, "height": 1920},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "duration": "3.215000", "sample_rate": "44100", "channels": 2}
  ],
  "format": {"filename": "scene_0.mp4", "nb_streams": 2, "duration": "3.200000", "format_name": "mov,mp4,m4a"}
}`

func TestParseAndDuration(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := result.VideoStreamCount(); got != 1 {
		t.Fatalf("VideoStreamCount = %d, want 1", got)
	}
	if got := result.AudioStreamCount(); got != 1 {
		t.Fatalf("AudioStreamCount = %d, want 1", got)
	}
	duration, err := result.DurationSeconds()
	if err != nil {
		t.Fatalf("DurationSeconds: %v", err)
	}
	if duration != 3.2 {
		t.Fatalf("duration = %g, want 3.2", duration)
	}
}

func TestDurationFallsBackToStream(t *testing.T) {
	raw := `{"streams":[{"index":0,"codec_type":"audio","duration":"2.5"}],"format":{"filename":"audio0.mp3"}}`
	result, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	duration, err := result.DurationSeconds()
	if err != nil {
		t.Fatalf("DurationSeconds: %v", err)
	}
	if duration != 2.5 {
		t.Fatalf("duration = %g, want 2.5", duration)
	}
}

func TestDurationMissingMetadata(t *testing.T) {
	result, err := Parse([]byte(`{"streams":[],"format":{"filename":"broken.mp4"}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := result.DurationSeconds(); err == nil {
		t.Fatal("expected missing duration metadata to error")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse failure")
	}
}
