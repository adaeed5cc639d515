package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSilence(); err != nil {
		return err
	}
	if err := c.validateTranscript(); err != nil {
		return err
	}
	if err := c.validateTranscribe(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSilence() error {
	if c.Silence.FrameRate <= 0 {
		return errors.New("silence.frame_rate must be positive")
	}
	if c.Silence.Channels != 1 && c.Silence.Channels != 2 {
		return fmt.Errorf("silence.channels must be 1 or 2, got %d", c.Silence.Channels)
	}
	if c.Silence.SmoothingWindowSeconds < 0 {
		return errors.New("silence.smoothing_window_seconds must not be negative")
	}
	if c.Silence.EdgeBufferSeconds < 0 {
		return errors.New("silence.edge_buffer_seconds must not be negative")
	}
	if c.Silence.MinSilenceSeconds < 0 {
		return errors.New("silence.min_silence_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateTranscript() error {
	if c.Transcript.BufferSeconds < 0 {
		return errors.New("transcript.buffer_seconds must not be negative")
	}
	if c.Transcript.ChunkSeconds <= 0 {
		return errors.New("transcript.chunk_seconds must be positive")
	}
	if c.Transcript.SampleRate <= 0 {
		return errors.New("transcript.sample_rate must be positive")
	}
	if c.Transcript.ScriptPath == "" {
		return errors.New("transcript.script_path must be set")
	}
	return nil
}

func (c *Config) validateTranscribe() error {
	switch c.Transcribe.Backend {
	case "openai", "file":
	default:
		return fmt.Errorf("transcribe.backend must be openai or file, got %q", c.Transcribe.Backend)
	}
	if c.Transcribe.TimeoutSeconds <= 0 {
		return errors.New("transcribe.timeout_seconds must be positive")
	}
	if c.Transcribe.Backend == "openai" && strings.TrimSpace(c.Transcribe.BaseURL) == "" {
		return errors.New("transcribe.base_url must be set for the openai backend")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.FFmpeg == "" {
		return errors.New("output.ffmpeg must be set")
	}
	if c.Output.FFprobe == "" {
		return errors.New("output.ffprobe must be set")
	}
	return nil
}
