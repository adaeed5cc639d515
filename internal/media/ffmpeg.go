// Package media drives ffmpeg for audio extraction, chunking and cutting
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/linuxmatters/jivecut/internal/processor"
)

// ErrEmptyPlan is returned when asked to cut with nothing to keep
var ErrEmptyPlan = errors.New("keep plan has no non-empty intervals")

// FFmpeg runs a specific ffmpeg binary
type FFmpeg struct {
	Binary string
}

// New returns an FFmpeg using binary, or "ffmpeg" from PATH when empty
func New(binary string) *FFmpeg {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{Binary: binary}
}

func (f *FFmpeg) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, f.Binary, append([]string{"-hide_banner", "-loglevel", "error", "-y"}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// ExtractAudio writes the input's audio as 16-bit PCM WAV at sampleRate with
// the given channel count and returns the path of the extracted file.
func (f *FFmpeg) ExtractAudio(ctx context.Context, inputPath, tmpDir string, sampleRate, channels int) (string, error) {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	out := filepath.Join(tmpDir, fmt.Sprintf("%s_audio_%d.wav", base, sampleRate))

	err := f.run(ctx,
		"-i", inputPath,
		"-vn",
		"-ac", fmt.Sprint(channels),
		"-ar", fmt.Sprint(sampleRate),
		"-c:a", "pcm_s16le",
		"-f", "wav",
		out,
	)
	if err != nil {
		return "", err
	}
	return out, nil
}

// SplitAudio cuts the input's audio into consecutive mono WAV chunks of
// chunkSeconds each (the last may be shorter) and returns their paths in
// order. Chunk i starts at i*chunkSeconds in the source.
func (f *FFmpeg) SplitAudio(ctx context.Context, inputPath, tmpDir string, chunkSeconds float64, sampleRate int) ([]string, error) {
	dir, err := os.MkdirTemp(tmpDir, "jivecut-chunks-*")
	if err != nil {
		return nil, fmt.Errorf("create chunk directory: %w", err)
	}

	pattern := filepath.Join(dir, "audio_subclip%03d.wav")
	err = f.run(ctx,
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", fmt.Sprint(sampleRate),
		"-c:a", "pcm_s16le",
		"-f", "segment",
		"-segment_time", fmt.Sprintf("%g", chunkSeconds),
		"-reset_timestamps", "1",
		pattern,
	)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	chunks, err := filepath.Glob(filepath.Join(dir, "audio_subclip*.wav"))
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	// Zero-padded names sort in time order
	sort.Strings(chunks)
	return chunks, nil
}

// CutOptions controls how the edited file is encoded
type CutOptions struct {
	VideoCodec string
	AudioCodec string
	AudioOnly  bool
}

// Cut extracts every non-empty interval of plan from inputPath and
// concatenates them in plan order into outputPath.
func (f *FFmpeg) Cut(ctx context.Context, inputPath, outputPath string, plan processor.KeepPlan, opts CutOptions) error {
	plan = plan.NonEmpty()
	if len(plan) == 0 {
		return ErrEmptyPlan
	}

	script, err := os.CreateTemp("", "jivecut-filter-*.txt")
	if err != nil {
		return fmt.Errorf("create filter script: %w", err)
	}
	defer os.Remove(script.Name())

	if _, err := script.WriteString(ConcatFilter(plan, opts.AudioOnly)); err != nil {
		script.Close()
		return fmt.Errorf("write filter script: %w", err)
	}
	if err := script.Close(); err != nil {
		return fmt.Errorf("close filter script: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	args := []string{"-i", inputPath, "-filter_complex_script", script.Name()}
	if !opts.AudioOnly {
		args = append(args, "-map", "[v]", "-c:v", opts.VideoCodec)
	}
	args = append(args, "-map", "[a]", "-c:a", opts.AudioCodec, outputPath)
	return f.run(ctx, args...)
}

// ConcatFilter builds the filtergraph that trims each interval and joins the
// pieces in order. Outputs are labelled [v] and [a].
func ConcatFilter(plan processor.KeepPlan, audioOnly bool) string {
	var sb strings.Builder
	var inputs strings.Builder
	for i, t := range plan {
		if !audioOnly {
			fmt.Fprintf(&sb, "[0:v]trim=start=%.6f:end=%.6f,setpts=PTS-STARTPTS[v%d];\n", t.Start, t.Stop, i)
			fmt.Fprintf(&inputs, "[v%d]", i)
		}
		fmt.Fprintf(&sb, "[0:a]atrim=start=%.6f:end=%.6f,asetpts=PTS-STARTPTS[a%d];\n", t.Start, t.Stop, i)
		fmt.Fprintf(&inputs, "[a%d]", i)
	}
	if audioOnly {
		fmt.Fprintf(&sb, "%sconcat=n=%d:v=0:a=1[a]\n", inputs.String(), len(plan))
	} else {
		fmt.Fprintf(&sb, "%sconcat=n=%d:v=1:a=1[v][a]\n", inputs.String(), len(plan))
	}
	return sb.String()
}

// IsAudioOnly reports whether path names a container without video
func IsAudioOnly(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3", ".flac", ".m4a", ".aac", ".ogg", ".opus":
		return true
	}
	return false
}

// EditedPath returns the output path for the silence path:
// <dir>/<base>-edited.<ext>, video defaulting to .mp4 as the cutter encodes
// H.264/AAC.
func EditedPath(dir, inputPath string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	ext := ".mp4"
	if IsAudioOnly(inputPath) {
		ext = ".m4a"
	}
	return filepath.Join(dir, base+"-edited"+ext)
}

// FinalPath returns the output path for the transcript path: final-<name>
// next to dir
func FinalPath(dir, inputPath string) string {
	name := filepath.Base(inputPath)
	if IsAudioOnly(inputPath) {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".m4a"
	}
	return filepath.Join(dir, "final-"+name)
}
