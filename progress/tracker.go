package progress

import (
	L "arkiv/logger"
	"math"
	"sync"
	"time"
)

// Tracker counts completed entries and keeps an exponentially smoothed
// per-entry duration. It is safe for concurrent use.
type Tracker struct {
	mu          sync.Mutex
	tuning      Tuning
	total       uint64
	completed   uint64
	lastUpdate  time.Time
	smoothed    float64
	hasSmoothed bool
	now         func() time.Time
}

type Snapshot struct {
	Completed       uint64
	Total           uint64
	SecondsPerEntry float64
	HasEstimate     bool
}

func NewTracker(total uint64, tuning Tuning) *Tracker {
	return newTrackerWithClock(total, tuning, time.Now)
}

func newTrackerWithClock(total uint64, tuning Tuning, now func() time.Time) *Tracker {
	return &Tracker{
		tuning:     tuning,
		total:      total,
		lastUpdate: now(),
		now:        now,
	}
}

// Increment records one completed entry. Calls past the total are ignored.
func (t *Tracker) Increment() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.completed >= t.total {
		L.Debug("progress: increment past total ignored")
		return
	}
	t.completed++

	now := t.now()
	elapsed := now.Sub(t.lastUpdate)
	t.lastUpdate = now
	if elapsed < t.tuning.MinSample || elapsed > t.tuning.MaxSample {
		return
	}
	sample := elapsed.Seconds()
	if !t.hasSmoothed {
		t.smoothed = sample
		t.hasSmoothed = true
		return
	}
	t.smoothed = t.tuning.Smoothing*sample + (1-t.tuning.Smoothing)*t.smoothed
}

func (t *Tracker) Completed() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed
}

func (t *Tracker) Total() uint64 {
	return t.total
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Completed:       t.completed,
		Total:           t.total,
		SecondsPerEntry: t.smoothed,
		HasEstimate:     t.hasSmoothed,
	}
}

// Percentage is in [0, 100]. An empty run is complete.
func (s Snapshot) Percentage() float64 {
	if s.Total == 0 {
		return 100.0
	}
	return float64(s.Completed) * 100.0 / float64(s.Total)
}

// ETA returns the estimated remaining time, or false while the estimate is
// still warming up.
func (t *Tracker) ETA() (time.Duration, bool) {
	s := t.Snapshot()
	warmup := min(t.tuning.WarmupEntries, s.Total)
	if s.Completed < warmup || !s.HasEstimate {
		return 0, false
	}
	perEntry := max(t.tuning.MinSecondsPerEntry, min(s.SecondsPerEntry, t.tuning.MaxSecondsPerEntry))
	remaining := s.Total - s.Completed
	nanos := perEntry * float64(remaining) * float64(time.Second)
	if nanos >= math.MaxInt64 {
		return time.Duration(math.MaxInt64), true
	}
	return time.Duration(nanos), true
}

func (t *Tracker) ETAString() string {
	eta, ok := t.ETA()
	if !ok {
		return "ETA: Calculating..."
	}
	return "ETA: " + L.HumanReadableTime(eta.Round(time.Millisecond).Milliseconds())
}
