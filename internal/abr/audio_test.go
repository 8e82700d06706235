package abr

import "testing"

func TestSelectAudioPrefersExplicitInput(t *testing.T) {
	inputs := []Input{
		{Kind: KindVideo, Key: "hd", Filename: "hd.mp4"},
		{Kind: KindAudio, Key: "main", Filename: "audio.mp4", Label: "English"},
	}
	audio, ok := SelectAudio(inputs, false)
	if !ok {
		t.Fatal("expected an audio clause")
	}
	if audio.Key != "main" || audio.Filename != "audio.mp4" {
		t.Fatalf("unexpected audio selection: %+v", audio)
	}
}

func TestSelectAudioFallsBackToFirstVideo(t *testing.T) {
	inputs := []Input{
		{Kind: KindVideo, Key: "hd", Filename: "hd.mp4"},
		{Kind: KindVideo, Key: "sd", Filename: "sd.mp4"},
	}
	audio, ok := SelectAudio(inputs, false)
	if !ok {
		t.Fatal("expected implicit audio clause")
	}
	if audio.Filename != "hd.mp4" {
		t.Fatalf("implicit audio should reuse first video file, got %q", audio.Filename)
	}
	if audio.Label != DefaultAudioLabel {
		t.Fatalf("implicit audio label = %q, want %q", audio.Label, DefaultAudioLabel)
	}
}

func TestSelectAudioDisabledImplicit(t *testing.T) {
	inputs := []Input{{Kind: KindVideo, Key: "hd", Filename: "hd.mp4"}}
	if _, ok := SelectAudio(inputs, true); ok {
		t.Fatal("implicit audio disabled: expected no audio clause")
	}
}

func TestSelectAudioNoCandidates(t *testing.T) {
	inputs := []Input{{Kind: KindText, Key: "en", Filename: "en.vtt"}}
	if _, ok := SelectAudio(inputs, false); ok {
		t.Fatal("expected no audio clause without audio or video inputs")
	}
}

func TestAudioOutputKeyDisambiguatesSingleFileCollision(t *testing.T) {
	inputs := []Input{
		{Kind: KindVideo, Key: "main", Filename: "v.mp4"},
		{Kind: KindAudio, Key: "main", Filename: "a.mp4"},
	}
	audio := inputs[1]
	if got := AudioOutputKey(audio, inputs, true); got != "main-audio" {
		t.Fatalf("AudioOutputKey = %q, want main-audio", got)
	}
	if got := AudioOutputKey(audio, inputs, false); got != "main" {
		t.Fatalf("templated addressing should keep key, got %q", got)
	}
}

func TestAudioOutputKeyNoCollision(t *testing.T) {
	inputs := []Input{
		{Kind: KindVideo, Key: "hd", Filename: "v.mp4"},
		{Kind: KindAudio, Key: "stereo", Filename: "a.mp4"},
	}
	if got := AudioOutputKey(inputs[1], inputs, true); got != "stereo" {
		t.Fatalf("AudioOutputKey = %q, want stereo", got)
	}
}
