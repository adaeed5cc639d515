// Package processor turns decoded audio into keep intervals
package processor

import (
	"errors"
	"fmt"
	"runtime"
)

// Pass numbers reported through ProgressFunc
const (
	PassDecoding  = 1
	PassSmoothing = 2
	PassScanning  = 3
	PassCutting   = 4
)

// ProgressFunc receives pass progress. progress runs 0.0 to 1.0; level is the
// loudest energy value seen by the pass so far (0 when not applicable).
type ProgressFunc func(pass int, passName string, progress float64, level float64)

// SilenceResult is everything the silence path learned about one track
type SilenceResult struct {
	FrameRate   int
	TotalFrames int
	Duration    float64 // seconds

	Window    CalibrationWindow
	Threshold float64

	Silences []FrameInterval
	Plan     KeepPlan

	// NoSilence is set when segmentation found nothing to cut and the plan
	// was replaced with WholeTrack
	NoSilence bool
}

// KeptDuration returns the length of the edited output in seconds
func (r *SilenceResult) KeptDuration() float64 {
	return r.Plan.Duration()
}

// SmoothEnergy applies the running average of cfg.SmoothingWindow frames to
// an energy sequence, sharded across GOMAXPROCS goroutines. Windows of 0 or 1
// return seq unchanged.
func SmoothEnergy(seq []float64, cfg SilenceConfig, progress ProgressFunc) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	report(progress, PassSmoothing, "Smoothing", 0.0, 0.0)

	if cfg.SmoothingWindow > 1 {
		smoothed, err := RunningAverageParallel(seq, cfg.SmoothingWindow, runtime.GOMAXPROCS(0))
		if err != nil {
			return nil, phaseErr(PhaseSegmentation, err)
		}
		seq = smoothed
	}

	report(progress, PassSmoothing, "Smoothing", 1.0, peak(seq))
	return seq, nil
}

// AnalyzeSilence runs calibration, segmentation and complementation over an
// energy sequence. When no silence is found the plan keeps the whole track
// and NoSilence is set.
func AnalyzeSilence(seq []float64, window CalibrationWindow, cfg SilenceConfig, progress ProgressFunc) (*SilenceResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, &PhaseError{Phase: PhaseSegmentation, Index: 0, Time: 0, Err: ErrInvalidDuration}
	}

	threshold, err := CalibrateThreshold(seq, window)
	if err != nil {
		return nil, err
	}

	report(progress, PassScanning, "Scanning", 0.0, threshold)
	silences := DetectSilences(seq, threshold, cfg)

	result := &SilenceResult{
		FrameRate:   cfg.FrameRate,
		TotalFrames: len(seq),
		Duration:    float64(len(seq)) / float64(cfg.FrameRate),
		Window:      window,
		Threshold:   threshold,
		Silences:    silences,
	}

	plan, err := KeepIntervals(SilenceTimes(silences, cfg.FrameRate), result.Duration)
	switch {
	case errors.Is(err, ErrNoSilence):
		// Nothing to cut: keep the whole track as a single interval
		result.Plan = WholeTrack(result.Duration)
		result.NoSilence = true
	case err != nil:
		return nil, fmt.Errorf("complement silences: %w", err)
	default:
		result.Plan = plan
	}

	report(progress, PassScanning, "Scanning", 1.0, threshold)
	return result, nil
}

func report(progress ProgressFunc, pass int, name string, fraction, level float64) {
	if progress != nil {
		progress(pass, name, fraction, level)
	}
}

func peak(seq []float64) float64 {
	var m float64
	for _, v := range seq {
		if v > m {
			m = v
		}
	}
	return m
}
