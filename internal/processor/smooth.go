package processor

import "sync"

// RunningAverage applies a trailing moving-average filter of `window` frames.
//
// Averages are computed with a running sum so the cost is O(N) regardless of
// window size. The N-W+1 full-window averages are centred on the input: the
// first average is replicated backward over the first W/2 positions and the
// last average forward over the remaining (W-1)-W/2 positions, so output[i]
// aligns index-for-index with seq[i] and len(output) == len(seq).
//
// A window longer than the sequence yields the whole-sequence mean everywhere.
func RunningAverage(seq []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	out := make([]float64, len(seq))
	if len(seq) == 0 {
		return out, nil
	}
	if window == 1 {
		copy(out, seq)
		return out, nil
	}
	if window > len(seq) {
		var sum float64
		for _, v := range seq {
			sum += v
		}
		mean := sum / float64(len(seq))
		for i := range out {
			out[i] = mean
		}
		return out, nil
	}

	averages := trailingAverages(seq, window, 0, len(seq)-window+1)
	centre(out, averages, window)
	return out, nil
}

// minResyncBlock is the smallest number of averages computed from one
// running sum before it is re-seeded from the raw samples.
const minResyncBlock = 4096

// resyncBlock is the re-seed interval for a given window. Re-seeding bounds
// floating-point drift and gives shards boundaries at which the sequential
// and parallel recurrences hold bit-identical sums.
func resyncBlock(window int) int {
	return max(minResyncBlock, window)
}

// RunningAverageParallel produces exactly the output of RunningAverage while
// splitting the full-window averages across shards goroutines. Shards start
// on re-seed boundaries, so each one replays the same recurrence the
// sequential scan would.
func RunningAverageParallel(seq []float64, window, shards int) ([]float64, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	count := len(seq) - window + 1
	block := resyncBlock(window)
	if shards <= 1 || window == 1 || count < 2*block {
		return RunningAverage(seq, window)
	}

	averages := make([]float64, count)
	per := (count + shards - 1) / shards
	per = (per + block - 1) / block * block

	var wg sync.WaitGroup
	for start := 0; start < count; start += per {
		end := min(start+per, count)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			copy(averages[start:end], trailingAverages(seq, window, start, end))
		}(start, end)
	}
	wg.Wait()

	out := make([]float64, len(seq))
	centre(out, averages, window)
	return out, nil
}

// trailingAverages returns the means of the windows seq[k:k+window] for
// k in [from, to). Requires to <= len(seq)-window+1. The running sum is
// re-seeded at from and at every multiple of resyncBlock(window).
func trailingAverages(seq []float64, window, from, to int) []float64 {
	averages := make([]float64, 0, to-from)
	w := float64(window)
	block := resyncBlock(window)

	var sum float64
	for k := from; k < to; k++ {
		if k == from || k%block == 0 {
			sum = 0
			for _, v := range seq[k : k+window] {
				sum += v
			}
		} else {
			sum += seq[k+window-1] - seq[k-1]
		}
		averages = append(averages, sum/w)
	}
	return averages
}

// centre writes averages into out with the edge padding described on
// RunningAverage. len(out) must equal len(averages)+window-1.
func centre(out, averages []float64, window int) {
	head := window / 2
	for i := 0; i < head; i++ {
		out[i] = averages[0]
	}
	copy(out[head:], averages)
	last := averages[len(averages)-1]
	for i := head + len(averages); i < len(out); i++ {
		out[i] = last
	}
}
