package shaka

import (
	"strings"
	"testing"

	"abrpack/internal/abr"
)

func TestBuildArgsSingleVideoImplicitAudio(t *testing.T) {
	inputs := []abr.Input{{Kind: abr.KindVideo, Key: "1080", Filename: "video-1080.mp4"}}
	args := BuildArgs(inputs, abr.Options{}, false)

	if len(args) < 2 {
		t.Fatalf("expected video and audio descriptors, got %v", args)
	}
	video := args[0]
	audio := args[1]
	if !strings.Contains(video, "in=video-1080.mp4") || !strings.Contains(video, "stream=video") {
		t.Fatalf("unexpected video descriptor %q", video)
	}
	if !strings.Contains(video, "init_segment=video/1080/init.mp4") {
		t.Fatalf("video descriptor missing init segment: %q", video)
	}
	if !strings.Contains(video, "segment_template=video/1080/$Number$.m4s") {
		t.Fatalf("video descriptor missing segment template: %q", video)
	}
	if !strings.Contains(video, "playlist_name=video-1080.m3u8") {
		t.Fatalf("video descriptor missing playlist name: %q", video)
	}

	if !strings.Contains(audio, "in=video-1080.mp4") || !strings.Contains(audio, "stream=audio") {
		t.Fatalf("implicit audio should reuse the video file: %q", audio)
	}
	if !strings.Contains(audio, "hls_group_id=audio") || !strings.Contains(audio, "hls_name="+abr.DefaultAudioLabel) {
		t.Fatalf("implicit audio missing default HLS grouping: %q", audio)
	}
}

func TestBuildArgsNoImplicitAudioOmitsClause(t *testing.T) {
	inputs := []abr.Input{{Kind: abr.KindVideo, Key: "1080", Filename: "video.mp4"}}
	args := BuildArgs(inputs, abr.Options{}, true)
	for _, arg := range args {
		if strings.Contains(arg, "stream=audio") {
			t.Fatalf("expected no audio descriptor, got %q", arg)
		}
	}
}

func TestBuildArgsSingleFileDisambiguatesAudioKey(t *testing.T) {
	inputs := []abr.Input{
		{Kind: abr.KindVideo, Key: "main", Filename: "v.mp4"},
		{Kind: abr.KindAudio, Key: "main", Filename: "a.mp4"},
	}
	opts := abr.Options{SegmentSingleFile: true, SegmentSingleFileTemplate: "bundle-$KEY$.mp4"}
	args := BuildArgs(inputs, opts, false)

	var videoOut, audioOut string
	for _, arg := range args {
		if strings.Contains(arg, "stream=video") {
			videoOut = extractField(t, arg, "output")
		}
		if strings.Contains(arg, "stream=audio") {
			audioOut = extractField(t, arg, "output")
		}
	}
	if videoOut != "bundle-main.mp4" {
		t.Fatalf("video output = %q", videoOut)
	}
	if audioOut != "bundle-main-audio.mp4" {
		t.Fatalf("audio output = %q, want disambiguated name", audioOut)
	}
	if videoOut == audioOut {
		t.Fatal("audio and video single-file outputs must differ")
	}
}

func TestBuildArgsTransportStreamOutput(t *testing.T) {
	inputs := []abr.Input{
		{Kind: abr.KindVideo, Key: "sd", Filename: "sd.mp4"},
		{Kind: abr.KindAudio, Key: "stereo", Filename: "a.mp4"},
	}
	args := BuildArgs(inputs, abr.Options{OutputFormat: abr.OutputTS}, false)

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "segment_template=video/sd/$Number$.ts") {
		t.Fatalf("expected ts video segments, got %q", joined)
	}
	if !strings.Contains(joined, "segment_template=audio/stereo/$Number$.aac") {
		t.Fatalf("expected aac audio segments, got %q", joined)
	}
	if strings.Contains(joined, "init_segment") {
		t.Fatalf("transport stream output should not emit init segments: %q", joined)
	}
}

func TestBuildArgsTextDescriptor(t *testing.T) {
	inputs := []abr.Input{
		{Kind: abr.KindVideo, Key: "hd", Filename: "hd.mp4"},
		{Kind: abr.KindText, Key: "sv", Filename: "subs.vtt", Label: "Svenska"},
	}
	args := BuildArgs(inputs, abr.Options{}, true)

	var text string
	for _, arg := range args {
		if strings.Contains(arg, "stream=text") {
			text = arg
		}
	}
	if text == "" {
		t.Fatal("missing text descriptor")
	}
	for _, want := range []string{
		"in=subs.vtt",
		"segment_template=text/sv/$Number$.vtt",
		"playlist_name=text-sv.m3u8",
		"hls_group_id=text",
		"hls_name=Svenska",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("text descriptor %q missing %q", text, want)
		}
	}
}

func TestBuildArgsManifestFlags(t *testing.T) {
	inputs := []abr.Input{{Kind: abr.KindVideo, Key: "hd", Filename: "hd.mp4"}}

	both := strings.Join(BuildArgs(inputs, abr.Options{SegmentDuration: 4}, true), " ")
	if !strings.Contains(both, "--mpd_output "+DashManifestName) {
		t.Fatalf("expected DASH manifest flag, got %q", both)
	}
	if !strings.Contains(both, "--hls_master_playlist_output "+MasterPlaylistName) {
		t.Fatalf("expected HLS master playlist flag, got %q", both)
	}
	if !strings.Contains(both, "--segment_duration 4") {
		t.Fatalf("expected segment duration flag, got %q", both)
	}

	dashOnly := strings.Join(BuildArgs(inputs, abr.Options{DashOnly: true}, true), " ")
	if strings.Contains(dashOnly, "--hls_master_playlist_output") {
		t.Fatalf("dash-only run should not emit HLS master playlist: %q", dashOnly)
	}

	hlsOnly := strings.Join(BuildArgs(inputs, abr.Options{HLSOnly: true}, true), " ")
	if strings.Contains(hlsOnly, "--mpd_output") || strings.Contains(hlsOnly, "--generate_static_live_mpd") {
		t.Fatalf("hls-only run should not emit DASH manifest flags: %q", hlsOnly)
	}
}

func extractField(t *testing.T, descriptor, field string) string {
	t.Helper()
	for _, part := range strings.Split(descriptor, ",") {
		if value, ok := strings.CutPrefix(part, field+"="); ok {
			return value
		}
	}
	t.Fatalf("descriptor %q missing field %q", descriptor, field)
	return ""
}
