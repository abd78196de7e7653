package archive

import (
	"arkiv/config"
	"arkiv/file_io"
	"arkiv/progress"
	"runtime"
)

type Options struct {
	Mode        config.PipelineMode
	Workers     int
	QueueSize   int
	Level       int
	Tuning      progress.Tuning
	NewDisplay  func(total uint64) progress.Display
	Enumerator  file_io.Enumerator
	IgnorePaths map[string]bool
}

type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Mode:        config.PIPELINE_FANOUT,
		Workers:     runtime.NumCPU(),
		QueueSize:   64,
		Tuning:      progress.DefaultTuning(),
		NewDisplay:  func(uint64) progress.Display { return progress.NewQuietDisplay() },
		Enumerator:  file_io.WalkEnumerator{},
		IgnorePaths: map[string]bool{},
	}
}

// FromConfig applies the archiving keys of a loaded config.
func FromConfig(c *config.Config) Option {
	return func(o *Options) {
		o.Mode = c.PipelineMode
		if c.Workers > 0 {
			o.Workers = c.Workers
		}
		o.QueueSize = c.QueueSize
		o.Level = c.CompressionLevel
		o.Tuning = progress.TuningFromConfig(c.Progress)
	}
}

func WithMode(m config.PipelineMode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithWorkers sets the fan-out worker count, 0 keeps one per CPU.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(o *Options) { o.QueueSize = n }
}

func WithLevel(level int) Option {
	return func(o *Options) { o.Level = level }
}

func WithTuning(t progress.Tuning) Option {
	return func(o *Options) { o.Tuning = t }
}

func WithDisplay(newDisplay func(total uint64) progress.Display) Option {
	return func(o *Options) { o.NewDisplay = newDisplay }
}

func WithEnumerator(e file_io.Enumerator) Option {
	return func(o *Options) { o.Enumerator = e }
}

func WithIgnorePaths(paths map[string]bool) Option {
	return func(o *Options) {
		for p := range paths {
			o.IgnorePaths[p] = true
		}
	}
}
