package audio

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"
)

func writeWAV(t *testing.T, data []int, sampleRate, channels, bitDepth int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create WAV: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close WAV encoder: %v", err)
	}
	return path
}

func readAll(t *testing.T, r *Reader) []float64 {
	t.Helper()
	var out []float64
	for {
		chunk, err := r.Read()
		if err != nil {
			t.Fatalf("Read() error: %v", err)
		}
		if chunk == nil {
			return out
		}
		out = append(out, chunk...)
	}
}

func TestOpenAudioFileStereo16(t *testing.T) {
	data := []int{16384, -16384, 0, 8192, -32768, 32767}
	path := writeWAV(t, data, 8000, 2, 16)

	r, meta, err := OpenAudioFile(path)
	if err != nil {
		t.Fatalf("OpenAudioFile() error: %v", err)
	}
	defer r.Close()

	want := Metadata{Duration: 3.0 / 8000, SampleRate: 8000, Channels: 2, BitDepth: 16, Frames: 3}
	if diff := cmp.Diff(want, *meta); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}

	got := readAll(t, r)
	wantSamples := []float64{0.5, -0.5, 0, 0.25, -1, 32767.0 / 32768}
	if diff := cmp.Diff(wantSamples, got); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAudioFileMultipleChunks(t *testing.T) {
	frames := framesPerChunk*2 + 100
	data := make([]int, frames)
	for i := range data {
		data[i] = i % 1000
	}
	path := writeWAV(t, data, 11000, 1, 16)

	r, meta, err := OpenAudioFile(path)
	if err != nil {
		t.Fatalf("OpenAudioFile() error: %v", err)
	}
	defer r.Close()

	if meta.Frames != frames {
		t.Fatalf("Frames = %d, want %d", meta.Frames, frames)
	}
	got := readAll(t, r)
	if len(got) != frames {
		t.Fatalf("read %d samples, want %d", len(got), frames)
	}
	if got[frames-1] != float64((frames-1)%1000)/32768 {
		t.Errorf("last sample = %v", got[frames-1])
	}
}

func TestOpenAudioFileRejectsNonWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	if err := os.WriteFile(path, []byte("definitely not audio"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, _, err := OpenAudioFile(path); err == nil {
		t.Error("expected error for non-WAV input")
	}
	if _, _, err := OpenAudioFile(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderDoubleClose(t *testing.T) {
	path := writeWAV(t, []int{1, 2}, 8000, 1, 16)
	r, _, err := OpenAudioFile(path)
	if err != nil {
		t.Fatalf("OpenAudioFile() error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close() error: %v", err)
	}
	if err := r.Close(); err == nil {
		t.Error("second Close() should fail")
	}
}
