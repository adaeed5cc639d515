package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"

	"github.com/linuxmatters/jivecut/internal/config"
	"github.com/linuxmatters/jivecut/internal/processor"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("OPENAI_API_KEY", " env-key ")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "jivecut", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Transcribe.APIKey != "env-key" {
		t.Fatalf("expected API key from env, got %q", cfg.Transcribe.APIKey)
	}

	want := config.Default()
	want.Transcribe.APIKey = "env-key"
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "jivecut.toml")
	content := `
[silence]
frame_rate = 16000
channels = 1
min_silence_seconds = 0.75

[transcript]
buffer_seconds = 0.2
words_path = "~/words.json"

[transcribe]
backend = " FILE "

[output]
dir = "~/edits"
keep_temp = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %q to be loaded, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Silence.FrameRate != 16000 || cfg.Silence.Channels != 1 {
		t.Fatalf("unexpected silence settings: %+v", cfg.Silence)
	}
	if cfg.Silence.EdgeBufferSeconds != 0.1 {
		t.Fatalf("expected untouched edge buffer default, got %v", cfg.Silence.EdgeBufferSeconds)
	}
	if cfg.Transcribe.Backend != "file" {
		t.Fatalf("expected backend normalised to file, got %q", cfg.Transcribe.Backend)
	}
	if cfg.Transcript.WordsPath != filepath.Join(tempHome, "words.json") {
		t.Fatalf("unexpected words path: %q", cfg.Transcript.WordsPath)
	}
	if cfg.Output.Dir != filepath.Join(tempHome, "edits") {
		t.Fatalf("unexpected output dir: %q", cfg.Output.Dir)
	}
	if !cfg.Output.KeepTemp {
		t.Fatal("expected keep_temp to be set")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"zero_frame_rate", "[silence]\nframe_rate = 0\n", "silence.frame_rate"},
		{"three_channels", "[silence]\nchannels = 3\n", "silence.channels"},
		{"negative_edge_buffer", "[silence]\nedge_buffer_seconds = -0.1\n", "silence.edge_buffer_seconds"},
		{"zero_chunk", "[transcript]\nchunk_seconds = 0\n", "transcript.chunk_seconds"},
		{"unknown_backend", "[transcribe]\nbackend = \"carrier-pigeon\"\n", "transcribe.backend"},
		{"empty_base_url", "[transcribe]\nbase_url = \"\"\n", "transcribe.base_url"},
		{"blank_base_url", "[transcribe]\nbase_url = \"  \"\n", "transcribe.base_url"},
		{"empty_ffmpeg", "[output]\nffmpeg = \"\"\n", "output.ffmpeg"},
		{"bad_toml", "[silence\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFileBackendNeedsNoBaseURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[transcribe]\nbackend = \"file\"\nbase_url = \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Transcribe.Backend != "file" {
		t.Errorf("Backend = %q, want file", cfg.Transcribe.Backend)
	}
}

func TestSilenceConfigUsesFrameRate(t *testing.T) {
	cfg := config.Default()
	cfg.Silence.SmoothingWindowSeconds = 0.01
	cfg.Silence.FlushTrailing = true

	got := cfg.SilenceConfig(8000)
	want := processor.SilenceConfig{
		FrameRate:       8000,
		SmoothingWindow: 80,
		EdgeBuffer:      800,
		MinSilence:      4000,
		FlushTrailing:   true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SilenceConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestSilenceConfigRoundsToNearestFrame(t *testing.T) {
	tests := []struct {
		name           string
		seconds        float64
		frameRate      int
		wantMinSilence int
	}{
		{"product_just_below_integer", 0.57, 11000, 6270},
		{"exact", 0.5, 11000, 5500},
		{"rounds_down", 0.0002, 2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Silence.MinSilenceSeconds = tt.seconds
			got := cfg.SilenceConfig(tt.frameRate)
			if got.MinSilence != tt.wantMinSilence {
				t.Errorf("MinSilence = %d, want %d", got.MinSilence, tt.wantMinSilence)
			}
			if got.MinSilence != processor.SecondsToFrame(tt.seconds, tt.frameRate) {
				t.Errorf("MinSilence disagrees with processor.SecondsToFrame")
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	if diff := cmp.Diff(config.Default(), decoded); diff != "" {
		t.Fatalf("sample mismatch (-want +got):\n%s", diff)
	}

	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected error when overwriting an existing config")
	}
}
