package processor

// SilenceConfig holds the frame-domain parameters for silence segmentation
type SilenceConfig struct {
	// FrameRate is the number of energy values per second
	FrameRate int

	// SmoothingWindow is the running-average window in frames (0 or 1 = off)
	SmoothingWindow int

	// EdgeBuffer pads each silence inward by this many frames so the
	// leading and trailing fricatives of adjacent speech survive the cut
	EdgeBuffer int

	// MinSilence is the duration in frames a silence must exceed (strictly)
	// to be reported
	MinSilence int

	// FlushTrailing emits a silence still open when the scan ends, closed at
	// the final frame. Off by default: an unterminated silence is discarded.
	FlushTrailing bool
}

// DefaultSilenceConfig returns the tuned defaults for spoken-word video:
// 11kHz frame rate, 0.1s edge buffer and 0.5s minimum silence.
func DefaultSilenceConfig() SilenceConfig {
	const frameRate = 11000
	return SilenceConfig{
		FrameRate:       frameRate,
		SmoothingWindow: 0,
		EdgeBuffer:      frameRate / 10,
		MinSilence:      frameRate / 2,
		FlushTrailing:   false,
	}
}

// Validate checks the configuration before any scan begins
func (c SilenceConfig) Validate() error {
	if c.FrameRate <= 0 {
		return phaseErr(PhaseSegmentation, ErrInvalidFrameRate)
	}
	if c.SmoothingWindow < 0 {
		return phaseErr(PhaseSegmentation, ErrInvalidWindow)
	}
	return nil
}

// FrameInterval is a silence span in frame units, Start <= Stop
type FrameInterval struct {
	Start int
	Stop  int
}

// Seconds converts the frame span to a TimeInterval
func (f FrameInterval) Seconds(frameRate int) TimeInterval {
	rate := float64(frameRate)
	return TimeInterval{Start: float64(f.Start) / rate, Stop: float64(f.Stop) / rate}
}

// DetectSilences scans seq once and returns the silence spans, ordered and
// disjoint.
//
// A silence opens on the first frame at or below threshold and closes on the
// first later frame at or above it. The opening frame is pushed forward and
// the closing frame pulled back by EdgeBuffer; the span is kept only when
// stop-start exceeds MinSilence. Both ends are clamped to [0, len(seq)].
func DetectSilences(seq []float64, threshold float64, cfg SilenceConfig) []FrameInterval {
	var silences []FrameInterval
	total := len(seq)
	inSilence := false
	start := 0

	emit := func(start, stop int) {
		if stop-start <= cfg.MinSilence {
			return
		}
		start = clampFrame(start, total)
		stop = clampFrame(stop, total)
		if stop <= start {
			return
		}
		silences = append(silences, FrameInterval{Start: start, Stop: stop})
	}

	for i, v := range seq {
		if v <= threshold && !inSilence {
			inSilence = true
			start = i + cfg.EdgeBuffer
		}
		if v >= threshold && inSilence {
			inSilence = false
			emit(start, i-cfg.EdgeBuffer)
		}
	}

	if inSilence && cfg.FlushTrailing {
		emit(start, total)
	}
	return silences
}

func clampFrame(frame, total int) int {
	return min(max(frame, 0), total)
}
