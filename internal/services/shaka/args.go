package shaka

import (
	"fmt"
	"strconv"
	"strings"

	"abrpack/internal/abr"
)

// Manifest filenames emitted at the root of the staging directory.
const (
	MasterPlaylistName = "index.m3u8"
	DashManifestName   = "manifest.mpd"
)

type descriptor []string

func (d descriptor) String() string { return strings.Join(d, ",") }

// BuildArgs maps the run's inputs and options to the packager argument list.
// Input filenames must already be resolved to local paths. The input set and
// options are assumed validated.
func BuildArgs(inputs []abr.Input, opts abr.Options, noImplicitAudio bool) []string {
	args := make([]string, 0, len(inputs)+8)

	for _, video := range abr.ByKind(inputs, abr.KindVideo) {
		args = append(args, videoDescriptor(video, opts).String())
	}
	if audio, ok := abr.SelectAudio(inputs, noImplicitAudio); ok {
		args = append(args, audioDescriptor(audio, inputs, opts).String())
	}
	for _, text := range abr.ByKind(inputs, abr.KindText) {
		args = append(args, textDescriptor(text).String())
	}

	if !opts.HLSOnly {
		args = append(args, "--generate_static_live_mpd", "--mpd_output", DashManifestName)
	}
	if !opts.DashOnly {
		args = append(args, "--hls_master_playlist_output", MasterPlaylistName)
	}
	if opts.SegmentDuration > 0 {
		args = append(args, "--segment_duration", strconv.Itoa(opts.SegmentDuration))
	}
	return args
}

func videoDescriptor(video abr.Input, opts abr.Options) descriptor {
	d := descriptor{
		"in=" + video.Filename,
		"stream=video",
	}
	switch {
	case opts.SegmentSingleFile:
		d = append(d, "output="+opts.SingleFileName(video.Key))
	case opts.Format() == abr.OutputTS:
		d = append(d, fmt.Sprintf("segment_template=video/%s/$Number$.ts", video.Key))
	default:
		d = append(d,
			fmt.Sprintf("init_segment=video/%s/init.mp4", video.Key),
			fmt.Sprintf("segment_template=video/%s/$Number$.m4s", video.Key),
		)
	}
	return append(d, "playlist_name=video-"+video.Key+".m3u8")
}

func audioDescriptor(audio abr.Input, inputs []abr.Input, opts abr.Options) descriptor {
	outputKey := abr.AudioOutputKey(audio, inputs, opts.SegmentSingleFile)
	d := descriptor{
		"in=" + audio.Filename,
		"stream=audio",
	}
	switch {
	case opts.SegmentSingleFile:
		d = append(d, "output="+opts.SingleFileName(outputKey))
	case opts.Format() == abr.OutputTS:
		d = append(d, fmt.Sprintf("segment_template=audio/%s/$Number$.aac", outputKey))
	default:
		d = append(d,
			fmt.Sprintf("init_segment=audio/%s/init.mp4", outputKey),
			fmt.Sprintf("segment_template=audio/%s/$Number$.m4s", outputKey),
		)
	}
	return append(d,
		"playlist_name=audio-"+outputKey+".m3u8",
		"hls_group_id=audio",
		"hls_name="+audio.DisplayLabel(),
	)
}

// Text streams always segment to WebVTT; byte-range addressing does not apply
// to subtitle playlists.
func textDescriptor(text abr.Input) descriptor {
	return descriptor{
		"in=" + text.Filename,
		"stream=text",
		fmt.Sprintf("segment_template=text/%s/$Number$.vtt", text.Key),
		"playlist_name=text-" + text.Key + ".m3u8",
		"hls_group_id=text",
		"hls_name=" + text.DisplayLabel(),
	}
}
