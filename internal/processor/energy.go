package processor

import "math"

// Sample holds the channel readings at one frame index.
// Mono sources carry one value, stereo sources two.
type Sample []float64

// Energy collapses a sample into a single non-negative loudness value.
// Mono returns |c0|; stereo returns |(c0+c1)/2|. Channels beyond the
// second are ignored.
func Energy(s Sample) (float64, error) {
	switch len(s) {
	case 0:
		return 0, ErrNoChannels
	case 1:
		return math.Abs(s[0]), nil
	default:
		return math.Abs((s[0] + s[1]) / 2), nil
	}
}

// EnergySequence reduces every sample to its energy value.
// The returned slice is newly allocated; samples is not modified.
func EnergySequence(samples []Sample) ([]float64, error) {
	seq := make([]float64, len(samples))
	for i, s := range samples {
		e, err := Energy(s)
		if err != nil {
			return nil, &PhaseError{Phase: PhaseSegmentation, Index: i, Time: -1, Err: err}
		}
		seq[i] = e
	}
	return seq, nil
}
