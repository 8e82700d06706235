package abr

// DefaultAudioLabel names the implicit audio rendition in HLS grouping when
// the audio clause is synthesized from a video input.
const DefaultAudioLabel = "default"

// SelectAudio resolves which input feeds the single audio clause of a run.
//
// Decision table: an explicit audio input always wins; with none present the
// first video input's file is reused unless implicit audio is disabled, in
// which case no audio clause is emitted (ok=false).
func SelectAudio(inputs []Input, noImplicitAudio bool) (Input, bool) {
	audios := ByKind(inputs, KindAudio)
	if len(audios) > 0 {
		return audios[0], true
	}
	if noImplicitAudio {
		return Input{}, false
	}
	videos := ByKind(inputs, KindVideo)
	if len(videos) == 0 {
		return Input{}, false
	}
	first := videos[0]
	return Input{
		Kind:     KindAudio,
		Key:      first.Key,
		Filename: first.Filename,
		Label:    DefaultAudioLabel,
	}, true
}

// AudioOutputKey returns the key used for the audio stream's output filename.
// Under single-file addressing a video input sharing the audio key would
// collide on the expanded template, so the audio key gains an "-audio"
// suffix. Only one audio clause exists per run, so video keys are the only
// possible collision source.
func AudioOutputKey(audio Input, inputs []Input, singleFile bool) string {
	if !singleFile {
		return audio.Key
	}
	for _, video := range ByKind(inputs, KindVideo) {
		if video.Key == audio.Key {
			return audio.Key + "-audio"
		}
	}
	return audio.Key
}
