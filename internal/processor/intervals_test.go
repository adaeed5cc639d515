package processor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKeepIntervals(t *testing.T) {
	tests := []struct {
		name     string
		silences []TimeInterval
		total    float64
		want     KeepPlan
	}{
		{
			name:     "two_silences",
			silences: []TimeInterval{{Start: 1.1, Stop: 1.4}, {Start: 1.7, Stop: 2.9}},
			total:    4.0,
			want:     KeepPlan{{Start: 0, Stop: 1.1}, {Start: 1.4, Stop: 1.7}, {Start: 2.9, Stop: 4.0}},
		},
		{
			name:     "leading_silence_keeps_zero_length_head",
			silences: []TimeInterval{{Start: 0, Stop: 2}},
			total:    5,
			want:     KeepPlan{{Start: 0, Stop: 0}, {Start: 2, Stop: 5}},
		},
		{
			name:     "silence_to_end_leaves_empty_tail",
			silences: []TimeInterval{{Start: 3, Stop: 5}},
			total:    5,
			want:     KeepPlan{{Start: 0, Stop: 3}, {Start: 5, Stop: 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeepIntervals(tt.silences, tt.total)
			if err != nil {
				t.Fatalf("KeepIntervals() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, floatOpts); diff != "" {
				t.Errorf("KeepIntervals() mismatch (-want +got):\n%s", diff)
			}
			if len(got) != len(tt.silences)+1 {
				t.Errorf("len = %d, want %d", len(got), len(tt.silences)+1)
			}
		})
	}
}

func TestKeepIntervalsErrors(t *testing.T) {
	t.Run("no_silence", func(t *testing.T) {
		_, err := KeepIntervals(nil, 10)
		if !errors.Is(err, ErrNoSilence) {
			t.Fatalf("error = %v, want ErrNoSilence", err)
		}
	})

	for _, total := range []float64{0, -1} {
		_, err := KeepIntervals([]TimeInterval{{Start: 0, Stop: 1}}, total)
		if !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("total %v: error = %v, want ErrInvalidDuration", total, err)
		}
		var pe *PhaseError
		if !errors.As(err, &pe) || pe.Phase != PhaseSegmentation {
			t.Errorf("total %v: error = %v, want segmentation PhaseError", total, err)
		}
	}
}

func TestKeepPlan(t *testing.T) {
	plan := KeepPlan{{Start: 0, Stop: 0}, {Start: 1, Stop: 2.5}, {Start: 3, Stop: 3}, {Start: 4, Stop: 5}}

	if got := plan.Duration(); !approxEqual(got, 2.5) {
		t.Errorf("Duration() = %v, want 2.5", got)
	}
	want := KeepPlan{{Start: 1, Stop: 2.5}, {Start: 4, Stop: 5}}
	if diff := cmp.Diff(want, plan.NonEmpty()); diff != "" {
		t.Errorf("NonEmpty() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(KeepPlan{{Start: 0, Stop: 7}}, WholeTrack(7)); diff != "" {
		t.Errorf("WholeTrack() mismatch (-want +got):\n%s", diff)
	}
}

func TestSilenceTimes(t *testing.T) {
	got := SilenceTimes([]FrameInterval{{Start: 1100, Stop: 1400}, {Start: 1700, Stop: 2900}}, 1000)
	want := []TimeInterval{{Start: 1.1, Stop: 1.4}, {Start: 1.7, Stop: 2.9}}
	if diff := cmp.Diff(want, got, floatOpts); diff != "" {
		t.Errorf("SilenceTimes() mismatch (-want +got):\n%s", diff)
	}
}
