package processor

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// timestampPattern matches "1m30s", "1m 30s", "1m", "45s" and "0m2.5s"
var timestampPattern = regexp.MustCompile(`^(?:(\d+)\s*m)?\s*(?:(\d+(?:\.\d+)?)\s*s)?$`)

// ParseTimestamp converts a "<minutes>m<seconds>s" string to seconds
func ParseTimestamp(value string) (float64, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	m := timestampPattern.FindStringSubmatch(value)
	if value == "" || m == nil || (m[1] == "" && m[2] == "") {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
	}

	var seconds float64
	if m[1] != "" {
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
		}
		seconds += float64(minutes) * 60
	}
	if m[2] != "" {
		s, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
		}
		seconds += s
	}
	return seconds, nil
}

// FormatTimestamp renders seconds as whole minutes and seconds, e.g. "3m07s"
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%dm%02ds", total/60, total%60)
}

// SecondsToFrame converts a time offset to a frame index
func SecondsToFrame(seconds float64, frameRate int) int {
	return int(math.Round(seconds * float64(frameRate)))
}

// CalibrationWindow is a reference span known to contain only silence,
// expressed in frames as the half-open range [Start, Stop).
type CalibrationWindow struct {
	Start int
	Stop  int
}

// ParseCalibrationWindow parses the start and stop timestamps of a silent
// reference span into frame indices.
func ParseCalibrationWindow(start, stop string, frameRate int) (CalibrationWindow, error) {
	if frameRate <= 0 {
		return CalibrationWindow{}, phaseErr(PhaseCalibration, ErrInvalidFrameRate)
	}
	startSec, err := ParseTimestamp(start)
	if err != nil {
		return CalibrationWindow{}, phaseErr(PhaseCalibration, err)
	}
	stopSec, err := ParseTimestamp(stop)
	if err != nil {
		return CalibrationWindow{}, phaseErr(PhaseCalibration, err)
	}
	return CalibrationWindow{
		Start: SecondsToFrame(startSec, frameRate),
		Stop:  SecondsToFrame(stopSec, frameRate),
	}, nil
}

// CalibrateThreshold returns the loudest energy value inside the window,
// which becomes the silence threshold for segmentation.
func CalibrateThreshold(seq []float64, window CalibrationWindow) (float64, error) {
	if window.Stop <= window.Start {
		return 0, &PhaseError{Phase: PhaseCalibration, Index: window.Start, Time: -1, Err: ErrEmptyWindow}
	}
	if window.Start < 0 || window.Stop > len(seq) {
		return 0, &PhaseError{Phase: PhaseCalibration, Index: window.Stop, Time: -1,
			Err: fmt.Errorf("%w: [%d, %d) outside [0, %d)", ErrWindowOutOfRange, window.Start, window.Stop, len(seq))}
	}

	threshold := seq[window.Start]
	for _, v := range seq[window.Start+1 : window.Stop] {
		if v > threshold {
			threshold = v
		}
	}
	return threshold, nil
}
