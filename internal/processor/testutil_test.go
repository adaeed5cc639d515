package processor

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// floatOpts compares floats to within rounding error and treats nil and
// empty slices alike
var floatOpts = cmp.Options{
	cmpopts.EquateApprox(0, 1e-9),
	cmpopts.EquateEmpty(),
}

func approxEqual(a, b float64) bool {
	return cmp.Equal(a, b, floatOpts)
}

func cmpFloats(want, got []float64) string {
	return cmp.Diff(want, got, floatOpts)
}

// TestSegment is one stretch of synthetic audio
type TestSegment struct {
	DurationSecs float64 // Length in seconds
	Level        float64 // Linear amplitude 0.0 to 1.0 (0 = digital silence)
	ToneFreq     float64 // Sine frequency in Hz (0 = constant DC level)
}

// TestAudioOptions configures the synthetic audio to generate
type TestAudioOptions struct {
	SampleRate int // Sample rate (default: 11000)
	Channels   int // 1 or 2 (default: 2); both channels carry the same signal
	Segments   []TestSegment
}

// generateTestAudio writes a 16-bit PCM WAV built from opts.Segments into the
// test's temp directory and returns its path.
func generateTestAudio(t *testing.T, opts TestAudioOptions) string {
	t.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = 11000
	}
	if opts.Channels == 0 {
		opts.Channels = 2
	}

	var data []int
	for _, seg := range opts.Segments {
		frames := int(seg.DurationSecs * float64(opts.SampleRate))
		for i := 0; i < frames; i++ {
			v := seg.Level
			if seg.ToneFreq > 0 {
				ts := float64(i) / float64(opts.SampleRate)
				v = seg.Level * math.Sin(2.0*math.Pi*seg.ToneFreq*ts)
			}
			// Scale by 2^15 so levels like 0.5 decode back exactly
			sample := min(int(math.Round(math.Max(-1, math.Min(1, v))*32768.0)), 32767)
			for c := 0; c < opts.Channels; c++ {
				data = append(data, sample)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "synthetic.wav")
	if err := writeWAV(path, data, opts.SampleRate, opts.Channels); err != nil {
		t.Fatalf("failed to write WAV file: %v", err)
	}
	return path
}

// writeWAV writes interleaved 16-bit samples as a PCM WAV file
func writeWAV(path string, data []int, sampleRate, channels int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
