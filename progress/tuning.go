package progress

import (
	"arkiv/config"
	"time"
)

// Tuning holds the cadence and smoothing parameters of progress reporting.
type Tuning struct {
	StatusInterval time.Duration
	EtaInterval    time.Duration
	// samples outside [MinSample, MaxSample] do not move the average
	MinSample          time.Duration
	MaxSample          time.Duration
	Smoothing          float64
	MinSecondsPerEntry float64
	MaxSecondsPerEntry float64
	WarmupEntries      uint64
}

func DefaultTuning() Tuning {
	return TuningFromConfig(config.Default().Progress)
}

func TuningFromConfig(p config.Progress) Tuning {
	return Tuning{
		StatusInterval:     p.StatusInterval(),
		EtaInterval:        p.EtaInterval(),
		MinSample:          p.MinSample(),
		MaxSample:          p.MaxSample(),
		Smoothing:          p.Smoothing,
		MinSecondsPerEntry: p.MinSecondsPerEntry,
		MaxSecondsPerEntry: p.MaxSecondsPerEntry,
		WarmupEntries:      p.WarmupEntries,
	}
}
