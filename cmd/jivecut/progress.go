package main

import (
	"time"

	"github.com/linuxmatters/jivecut/internal/logging"
)

// progressHandler forwards processor progress and records how long each
// pass took
type progressHandler struct {
	log     func(string, ...interface{})
	forward func(pass int, passName string, progress, level float64)

	order   []int
	names   map[int]string
	started map[int]time.Time
	elapsed map[int]time.Duration
}

func newProgressHandler(log func(string, ...interface{}), forward func(int, string, float64, float64)) *progressHandler {
	return &progressHandler{
		log:     log,
		forward: forward,
		names:   make(map[int]string),
		started: make(map[int]time.Time),
		elapsed: make(map[int]time.Duration),
	}
}

func (ph *progressHandler) callback(pass int, passName string, progress float64, level float64) {
	ph.log("[MAIN] Progress: Pass %d (%s), %.1f%%, Level %.6f", pass, passName, progress*100, level)

	// Track pass timing
	if _, seen := ph.started[pass]; !seen {
		ph.started[pass] = time.Now()
		ph.names[pass] = passName
		ph.order = append(ph.order, pass)
	}
	if progress >= 1.0 {
		ph.elapsed[pass] = time.Since(ph.started[pass])
	}

	if ph.forward != nil {
		ph.forward(pass, passName, progress, level)
	}
}

// timings returns the completed passes in the order they started
func (ph *progressHandler) timings() []logging.PassTiming {
	timings := make([]logging.PassTiming, 0, len(ph.order))
	for _, pass := range ph.order {
		timings = append(timings, logging.PassTiming{Name: ph.names[pass], Elapsed: ph.elapsed[pass]})
	}
	return timings
}
