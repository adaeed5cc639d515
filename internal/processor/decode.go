package processor

import (
	"errors"
	"fmt"

	"github.com/linuxmatters/jivecut/internal/audio"
)

// DecodeEnergy reads a WAV file and reduces every frame to its energy value.
// Each decoded chunk is reduced before the next is read, so the raw samples
// are never held in memory at once.
func DecodeEnergy(inputPath string, progress ProgressFunc) ([]float64, *audio.Metadata, error) {
	reader, metadata, err := audio.OpenAudioFile(inputPath)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	report(progress, PassDecoding, "Decoding", 0.0, 0.0)

	channels := reader.Channels()
	seq := make([]float64, 0, metadata.Frames)
	var level float64

	// Report roughly every 1% of the file
	reportEvery := max(metadata.Frames/100, 1)
	nextReport := reportEvery

	for {
		chunk, err := reader.Read()
		if err != nil {
			return nil, nil, fmt.Errorf("decoding %s at frame %d: %w", inputPath, len(seq), err)
		}
		if chunk == nil {
			break
		}

		energies, err := EnergySequence(frames(chunk, channels))
		if err != nil {
			var pe *PhaseError
			if errors.As(err, &pe) {
				pe.Index += len(seq)
			}
			return nil, nil, err
		}
		for _, e := range energies {
			level = max(level, e)
		}
		seq = append(seq, energies...)

		if len(seq) >= nextReport && metadata.Frames > 0 {
			report(progress, PassDecoding, "Decoding", min(float64(len(seq))/float64(metadata.Frames), 1.0), level)
			nextReport = len(seq) + reportEvery
		}
	}

	// The header's frame count can be stale for streamed WAV output
	metadata.Frames = len(seq)
	metadata.Duration = float64(len(seq)) / float64(metadata.SampleRate)

	report(progress, PassDecoding, "Decoding", 1.0, level)
	return seq, metadata, nil
}

// frames splits interleaved audio into one Sample per frame. The samples
// alias buf; a trailing partial frame is dropped.
func frames(buf []float64, channels int) []Sample {
	if channels <= 0 {
		return []Sample{{}}
	}
	out := make([]Sample, 0, len(buf)/channels)
	for off := 0; off+channels <= len(buf); off += channels {
		out = append(out, Sample(buf[off:off+channels:off+channels]))
	}
	return out
}
