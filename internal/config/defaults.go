package config

import "github.com/linuxmatters/jivecut/internal/transcript"

const (
	defaultFrameRate         = 11000
	defaultChannels          = 2
	defaultEdgeBufferSeconds = 0.1
	defaultMinSilenceSeconds = 0.5
	defaultChunkSeconds      = 30
	defaultSpeechSampleRate  = 44100
	defaultScriptPath        = "script.txt"
	defaultWordsPath         = "words.json"
	defaultBackend           = "openai"
	defaultBaseURL           = "https://api.openai.com/v1"
	defaultModel             = "whisper-1"
	defaultLanguage          = "en"
	defaultTimeoutSeconds    = 600
	defaultOutputDir         = "finished"
	defaultFFmpeg            = "ffmpeg"
	defaultFFprobe           = "ffprobe"
	defaultVideoCodec        = "libx264"
	defaultAudioCodec        = "aac"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Silence: Silence{
			FrameRate:         defaultFrameRate,
			Channels:          defaultChannels,
			EdgeBufferSeconds: defaultEdgeBufferSeconds,
			MinSilenceSeconds: defaultMinSilenceSeconds,
		},
		Transcript: Transcript{
			BufferSeconds: transcript.DefaultBuffer,
			ChunkSeconds:  defaultChunkSeconds,
			SampleRate:    defaultSpeechSampleRate,
			Punctuation:   transcript.DefaultPunctuation,
			ScriptPath:    defaultScriptPath,
			WordsPath:     defaultWordsPath,
		},
		Transcribe: Transcribe{
			Backend:        defaultBackend,
			BaseURL:        defaultBaseURL,
			Model:          defaultModel,
			Language:       defaultLanguage,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Output: Output{
			Dir:        defaultOutputDir,
			FFmpeg:     defaultFFmpeg,
			FFprobe:    defaultFFprobe,
			VideoCodec: defaultVideoCodec,
			AudioCodec: defaultAudioCodec,
		},
	}
}
