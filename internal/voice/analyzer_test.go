package voice

import (
	"encoding/base64"
	"testing"
)

func TestAnalyzeIsDeterministic(t *testing.T) {
	t.Parallel()

	clip := base64.StdEncoding.EncodeToString([]byte("pcm sample data of a short clip"))

	first := Analyze(clip, "mp3")
	for i := 0; i < 5; i++ {
		got := Analyze(clip, "mp3")
		if got.Confidence != first.Confidence || got.AIGenerated != first.AIGenerated {
			t.Fatalf("scoring not reproducible: %+v vs %+v", got, first)
		}
	}
	if first.Confidence <= 0 || first.Confidence >= 1 {
		t.Fatalf("score out of range: %f", first.Confidence)
	}
}

func TestAnalyzeShortClipsScoreHigh(t *testing.T) {
	t.Parallel()

	clip := base64.StdEncoding.EncodeToString([]byte("tiny"))
	got := Analyze(clip, "wav")
	if got.Confidence < 0.7 {
		t.Fatalf("short clips should be biased upward, got %f", got.Confidence)
	}
}

func TestAnalyzeStripsDataURIHeader(t *testing.T) {
	t.Parallel()

	raw := []byte("pcm sample data of a short clip")
	bare := base64.StdEncoding.EncodeToString(raw)
	wrapped := "data:audio/mp3;base64," + bare

	if Analyze(wrapped, "mp3").Confidence != Analyze(bare, "mp3").Confidence {
		t.Fatal("data-URI header must not change the score")
	}
}

func TestAnalyzeInvalidBase64(t *testing.T) {
	t.Parallel()

	got := Analyze("!!!not-base64!!!", "mp3")
	if got.AIGenerated || got.Confidence != 0 {
		t.Fatalf("expected zero-confidence result, got %+v", got)
	}
	if got.Details["error"] == nil {
		t.Fatal("expected an error detail")
	}
}

func TestAnalyzeEmptyPayload(t *testing.T) {
	t.Parallel()

	got := Analyze("", "mp3")
	if got.Confidence != 0 || got.AIGenerated {
		t.Fatalf("expected zero-confidence result for empty input, got %+v", got)
	}
}
