package transcript

import (
	"errors"
	"fmt"

	"github.com/linuxmatters/jivecut/internal/processor"
)

// DefaultBuffer pads each retained run outward by 0.1 seconds
const DefaultBuffer = 0.1

// ErrAlignmentExhausted means the transcript ran out before every edited word
// was matched. The edit was not an order-preserving subsequence of the
// transcript: a word was added, reordered or respelled.
var ErrAlignmentExhausted = errors.New("alignment exhausted: transcript ended before the edited word list")

// Alignment is the outcome of matching an edited word list against a transcript
type Alignment struct {
	Plan    processor.KeepPlan
	Kept    int // transcript words retained
	Deleted int // transcript words consumed as deletions
}

// Align reconstructs the time ranges that cover only the words the user kept.
//
// Both sequences are walked forward with one index each. A transcript word
// equal to the next edited word is retained: it opens a run at its start
// minus buffer (floored at 0) unless one is already open. Any other word is a
// deletion: it closes an open run at its own start plus buffer, capped at the
// final word's end. Once every edited word is matched, the open run closes on
// the next transcript word's start plus buffer, or on the last matched word's
// end when the transcript is used up.
//
// Correctness depends on edited being an order-preserving subsequence of the
// transcript. When it is not, runs may be attributed to the wrong words, or
// the transcript runs out and ErrAlignmentExhausted is returned.
// Runs whose buffered edges meet are merged.
func Align(words []WordToken, edited []string, buffer float64, punctuation string) (*Alignment, error) {
	result := &Alignment{Plan: processor.KeepPlan{}}
	if len(edited) == 0 {
		result.Deleted = len(words)
		return result, nil
	}

	var finalTime float64
	if len(words) > 0 {
		finalTime = words[len(words)-1].End
	}

	var (
		keeping bool
		start   float64
		j       int // next unconsumed transcript word
	)

	for i := 0; i < len(edited); {
		if j >= len(words) {
			return nil, &processor.PhaseError{
				Phase: processor.PhaseAlignment,
				Index: i,
				Time:  finalTime,
				Err:   fmt.Errorf("%w: edited word %d %q unmatched", ErrAlignmentExhausted, i, edited[i]),
			}
		}

		want := StripPunctuation(edited[i], punctuation)
		word := words[j]
		j++

		if StripPunctuation(word.Text, punctuation) == want {
			if !keeping {
				keeping = true
				start = max(word.Start-buffer, 0)
			}
			result.Kept++
			i++
			continue
		}

		result.Deleted++
		if keeping {
			keeping = false
			result.Plan = appendRun(result.Plan, start, min(word.Start+buffer, finalTime))
		}
	}

	// The loop only exits right after a match, so a run is always open here
	var stop float64
	if j < len(words) {
		stop = min(words[j].Start+buffer, finalTime)
	} else {
		stop = words[j-1].End
	}
	result.Plan = appendRun(result.Plan, start, stop)
	result.Deleted += len(words) - j

	return result, nil
}

// appendRun adds a retained run, merging it into the previous one when the
// buffers make them touch or overlap (a deleted word shorter than two
// buffers), so the plan stays disjoint.
func appendRun(plan processor.KeepPlan, start, stop float64) processor.KeepPlan {
	if n := len(plan); n > 0 && start <= plan[n-1].Stop {
		plan[n-1].Stop = max(plan[n-1].Stop, stop)
		return plan
	}
	return append(plan, processor.TimeInterval{Start: start, Stop: stop})
}
