// Package audio provides PCM WAV reading using go-audio/wav
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// framesPerChunk is how many frames each Read call decodes
const framesPerChunk = 4096

// Reader wraps a go-audio WAV decoder for chunked reading
type Reader struct {
	file     *os.File
	dec      *wav.Decoder
	buf      *goaudio.IntBuffer
	scale    float64
	offset   int // 8-bit WAV is unsigned, centred on 128
	channels int
	out      []float64
}

// Metadata contains audio file metadata
type Metadata struct {
	Duration   float64 // seconds
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int // frames per channel
}

// OpenAudioFile opens a PCM WAV file for reading
func OpenAudioFile(filename string) (*Reader, *Metadata, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, nil, fmt.Errorf("not a valid PCM WAV file: %s", filename)
	}
	if err := dec.FwdToPCM(); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to find PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	sampleRate := int(dec.SampleRate)
	if channels == 0 || bitDepth == 0 || sampleRate == 0 {
		f.Close()
		return nil, nil, fmt.Errorf("incomplete WAV format header in file: %s", filename)
	}

	frames := int(dec.PCMLen()) / (channels * bitDepth / 8)
	metadata := &Metadata{
		Duration:   float64(frames) / float64(sampleRate),
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Frames:     frames,
	}

	reader := &Reader{
		file: f,
		dec:  dec,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			Data:   make([]int, framesPerChunk*channels),
		},
		// Full-scale signed PCM maps to [-1, 1]
		scale:    float64(int64(1) << (bitDepth - 1)),
		channels: channels,
		out:      make([]float64, 0, framesPerChunk*channels),
	}
	if bitDepth == 8 {
		reader.offset = 128
	}

	return reader, metadata, nil
}

// Read decodes the next chunk of interleaved samples scaled to [-1, 1].
// Returns nil when end of file is reached. The returned slice is reused by
// the next call.
func (r *Reader) Read() ([]float64, error) {
	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to decode PCM: %w", err)
	}
	if n == 0 {
		return nil, nil // EOF
	}

	// Drop a trailing partial frame rather than misalign channels
	n -= n % r.channels

	r.out = r.out[:0]
	for _, v := range r.buf.Data[:n] {
		r.out = append(r.out, float64(v-r.offset)/r.scale)
	}
	return r.out, nil
}

// Channels returns the number of interleaved channels Read produces
func (r *Reader) Channels() int {
	return r.channels
}

// Close releases the underlying file
func (r *Reader) Close() error {
	if r.file == nil {
		return errors.New("reader already closed")
	}
	err := r.file.Close()
	r.file = nil
	return err
}
