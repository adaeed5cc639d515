package processor

import "fmt"

// TimeInterval is a span of the source track in seconds, Start <= Stop
type TimeInterval struct {
	Start float64 `json:"start"`
	Stop  float64 `json:"stop"`
}

// Duration returns the length of the interval in seconds
func (t TimeInterval) Duration() float64 {
	return t.Stop - t.Start
}

func (t TimeInterval) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", t.Start, t.Stop)
}

// KeepPlan is the ordered list of source spans to retain. Both the silence
// and the transcript paths produce one; the cutter concatenates it in order.
type KeepPlan []TimeInterval

// Duration returns the summed length of every interval in the plan
func (p KeepPlan) Duration() float64 {
	var total float64
	for _, t := range p {
		total += t.Duration()
	}
	return total
}

// NonEmpty returns the plan without zero-length markers
func (p KeepPlan) NonEmpty() KeepPlan {
	out := make(KeepPlan, 0, len(p))
	for _, t := range p {
		if t.Duration() > 0 {
			out = append(out, t)
		}
	}
	return out
}

// WholeTrack is the plan that keeps everything. Callers apply it when
// segmentation reports ErrNoSilence.
func WholeTrack(total float64) KeepPlan {
	return KeepPlan{{Start: 0, Stop: total}}
}

// SilenceTimes converts frame-unit silences to seconds
func SilenceTimes(silences []FrameInterval, frameRate int) []TimeInterval {
	out := make([]TimeInterval, len(silences))
	for i, s := range silences {
		out[i] = s.Seconds(frameRate)
	}
	return out
}

// KeepIntervals inverts ordered, disjoint silences over [0, total].
//
// The first interval runs from 0 to the first silence start and is kept even
// when it has zero length; each following interval runs from the previous
// silence stop to the next silence start; the last runs to total.
func KeepIntervals(silences []TimeInterval, total float64) (KeepPlan, error) {
	if total <= 0 {
		return nil, &PhaseError{Phase: PhaseSegmentation, Index: -1, Time: total, Err: ErrInvalidDuration}
	}
	if len(silences) == 0 {
		return nil, phaseErr(PhaseSegmentation, ErrNoSilence)
	}

	plan := make(KeepPlan, 0, len(silences)+1)
	plan = append(plan, TimeInterval{Start: 0, Stop: silences[0].Start})
	for i := 1; i < len(silences); i++ {
		plan = append(plan, TimeInterval{Start: silences[i-1].Stop, Stop: silences[i].Start})
	}
	plan = append(plan, TimeInterval{Start: silences[len(silences)-1].Stop, Stop: total})
	return plan, nil
}
