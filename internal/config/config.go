// Package config loads jivecut settings from TOML
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/linuxmatters/jivecut/internal/processor"
)

// Silence configures the amplitude-threshold path
type Silence struct {
	FrameRate              int     `toml:"frame_rate"`
	Channels               int     `toml:"channels"`
	SmoothingWindowSeconds float64 `toml:"smoothing_window_seconds"`
	EdgeBufferSeconds      float64 `toml:"edge_buffer_seconds"`
	MinSilenceSeconds      float64 `toml:"min_silence_seconds"`
	FlushTrailing          bool    `toml:"flush_trailing"`
}

// Transcript configures the transcript-alignment path
type Transcript struct {
	BufferSeconds float64 `toml:"buffer_seconds"`
	ChunkSeconds  float64 `toml:"chunk_seconds"`
	SampleRate    int     `toml:"sample_rate"`
	Punctuation   string  `toml:"punctuation"`
	ScriptPath    string  `toml:"script_path"`
	WordsPath     string  `toml:"words_path"`
}

// Transcribe configures the speech-to-text backend
type Transcribe struct {
	Backend        string `toml:"backend"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Output configures where and how edited media is written
type Output struct {
	Dir        string `toml:"dir"`
	FFmpeg     string `toml:"ffmpeg"`
	FFprobe    string `toml:"ffprobe"`
	VideoCodec string `toml:"video_codec"`
	AudioCodec string `toml:"audio_codec"`
	KeepTemp   bool   `toml:"keep_temp"`
}

// Config is the complete configuration
type Config struct {
	Silence    Silence    `toml:"silence"`
	Transcript Transcript `toml:"transcript"`
	Transcribe Transcribe `toml:"transcribe"`
	Output     Output     `toml:"output"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/jivecut/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error: defaults are returned and exists is false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs("jivecut.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	if c.Transcribe.APIKey == "" {
		c.Transcribe.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	c.Transcribe.Backend = strings.ToLower(strings.TrimSpace(c.Transcribe.Backend))

	var err error
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	if c.Transcript.ScriptPath, err = expandPath(c.Transcript.ScriptPath); err != nil {
		return fmt.Errorf("transcript.script_path: %w", err)
	}
	if c.Transcript.WordsPath, err = expandPath(c.Transcript.WordsPath); err != nil {
		return fmt.Errorf("transcript.words_path: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(pathValue, "~")), nil
	}
	return pathValue, nil
}

// SilenceConfig converts the second-based settings to frame units at the
// decoded audio's actual frame rate, rounding to the nearest frame
func (c *Config) SilenceConfig(frameRate int) processor.SilenceConfig {
	return processor.SilenceConfig{
		FrameRate:       frameRate,
		SmoothingWindow: processor.SecondsToFrame(c.Silence.SmoothingWindowSeconds, frameRate),
		EdgeBuffer:      processor.SecondsToFrame(c.Silence.EdgeBufferSeconds, frameRate),
		MinSilence:      processor.SecondsToFrame(c.Silence.MinSilenceSeconds, frameRate),
		FlushTrailing:   c.Silence.FlushTrailing,
	}
}

// Marshal renders the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// CreateSample writes the default configuration to path, refusing to
// overwrite an existing file
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config already exists: %s", expanded)
	}
	cfg := Default()
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
