package generator

import (
	"time"

	"github.com/lightningnetwork/lnd/clock"
)

// DefaultWindow is the number of attempts per throughput sample.
const DefaultWindow = 10000

// Sample is one benchmark window.
type Sample struct {
	Attempts  uint64
	Elapsed   time.Duration
	PerSecond float64 // measured on the benchmarking worker
	Estimated float64 // PerSecond scaled by the worker count
}

// Meter counts attempts of a single worker and closes a Sample every window
// attempts. It is not safe for concurrent use.
type Meter struct {
	clock   clock.Clock
	window  uint64
	workers int

	count uint64
	start time.Time
}

func NewMeter(c clock.Clock, window uint64, workers int) *Meter {
	return &Meter{clock: c, window: window, workers: workers, start: c.Now()}
}

// Tick records one attempt and returns a sample when the window is full.
func (m *Meter) Tick() (Sample, bool) {
	m.count++
	if m.count < m.window {
		return Sample{}, false
	}

	now := m.clock.Now()
	s := Sample{Attempts: m.count, Elapsed: now.Sub(m.start)}
	if s.Elapsed > 0 {
		s.PerSecond = float64(s.Attempts) / s.Elapsed.Seconds()
		s.Estimated = s.PerSecond * float64(m.workers)
	}

	m.count = 0
	m.start = now
	return s, true
}

// benchWorker picks the worker that carries the Meter.
func benchWorker(threads int) int {
	if threads > 1 {
		return 1
	}
	return 0
}
