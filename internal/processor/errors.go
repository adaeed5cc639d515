package processor

import (
	"errors"
	"fmt"
)

// Phase names the pipeline stage an error belongs to
type Phase string

const (
	PhaseCalibration  Phase = "calibration"
	PhaseSegmentation Phase = "segmentation"
	PhaseAlignment    Phase = "alignment"
)

// Sentinel errors. Callers match these with errors.Is through PhaseError.
var (
	ErrNoChannels         = errors.New("sample has no channels")
	ErrInvalidWindow      = errors.New("smoothing window must be positive")
	ErrMalformedTimestamp = errors.New("malformed timestamp, want XmYs")
	ErrEmptyWindow        = errors.New("calibration window is empty")
	ErrWindowOutOfRange   = errors.New("calibration window is out of range")
	ErrInvalidFrameRate   = errors.New("frame rate must be positive")
	ErrInvalidDuration    = errors.New("total duration must be positive")
	ErrNoSilence          = errors.New("no silence found")
)

// PhaseError reports which phase failed and, where known, the offending
// frame index or time in seconds. Index and Time are -1 when not applicable.
type PhaseError struct {
	Phase Phase
	Index int
	Time  float64
	Err   error
}

func (e *PhaseError) Error() string {
	switch {
	case e.Index >= 0 && e.Time >= 0:
		return fmt.Sprintf("%s failed at index %d (%.3fs): %v", e.Phase, e.Index, e.Time, e.Err)
	case e.Index >= 0:
		return fmt.Sprintf("%s failed at index %d: %v", e.Phase, e.Index, e.Err)
	case e.Time >= 0:
		return fmt.Sprintf("%s failed at %.3fs: %v", e.Phase, e.Time, e.Err)
	default:
		return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
	}
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// phaseErr builds a PhaseError with no index or time attached
func phaseErr(phase Phase, err error) *PhaseError {
	return &PhaseError{Phase: phase, Index: -1, Time: -1, Err: err}
}
