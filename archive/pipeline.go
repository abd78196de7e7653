package archive

import (
	"arkiv/config"
	"arkiv/file_io"
	L "arkiv/logger"
	"arkiv/progress"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

type Task struct {
	ID         int64
	InputPath  string
	OutputPath string
	Format     config.ArchiveFormat
}

type Result struct {
	Total      uint64
	Completed  uint64
	Appended   uint64
	Skipped    uint64
	Warnings   []string
	Entries    []AppendedEntry
	Duration   time.Duration
	OutputSize uint64
}

// Pipeline enumerates a source tree and appends every entry through one
// Gateway, either from a pool of workers or from a single consumer.
type Pipeline struct {
	task Task
	open OutputFactory
	opts Options

	mu          sync.Mutex
	status      ArchiveStatus
	enumeration *file_io.Enumeration
	tracker     *progress.Tracker
	result      *Result
}

func NewArchiver(task Task, opts ...Option) (*Pipeline, error) {
	if !file_io.IsReadable(task.InputPath) {
		return nil, fmt.Errorf("no read permission on input path: %s", task.InputPath)
	}
	outputDir := filepath.Dir(task.OutputPath)
	err := os.MkdirAll(outputDir, os.ModePerm)
	if err != nil {
		return nil, err
	}
	if !file_io.IsWritable(outputDir) {
		return nil, fmt.Errorf("no write permission on output path: %s", outputDir)
	}
	absOutput, err := filepath.Abs(task.OutputPath)
	if err != nil {
		return nil, err
	}
	task.OutputPath = absOutput

	p := newPipeline(task, nil, opts...)
	p.opts.IgnorePaths[absOutput] = true
	p.open = FileOutput(absOutput, task.Format, p.opts.Level)
	return p, nil
}

func newPipeline(task Task, open OutputFactory, opts ...Option) *Pipeline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		task:   task,
		open:   open,
		opts:   o,
		status: STATUS_IN_QUEUE,
	}
}

// BuildArchive archives root into the output produced by open.
func BuildArchive(ctx context.Context, root string, open OutputFactory, opts ...Option) (*Result, error) {
	p := newPipeline(Task{InputPath: root}, open, opts...)
	err := p.Plan(ctx)
	if err != nil {
		return nil, err
	}
	err = p.Start(ctx)
	return p.GetResult(ctx), err
}

func (p *Pipeline) UpdateStatus(ctx context.Context, newStatus ArchiveStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = newStatus
	return nil
}

func (p *Pipeline) Plan(ctx context.Context) error {
	p.UpdateStatus(ctx, STATUS_PLANNING)
	L.Info(fmt.Sprintf("Checking files in %s", p.task.InputPath))
	enumeration, err := p.opts.Enumerator.Enumerate(ctx, p.task.InputPath, p.opts.IgnorePaths)
	if err != nil {
		p.UpdateStatus(ctx, STATUS_FAILED)
		return err
	}
	p.mu.Lock()
	p.enumeration = enumeration
	p.tracker = progress.NewTracker(enumeration.Total(), p.opts.Tuning)
	p.mu.Unlock()
	L.Debug(fmt.Sprintf("Planned %d entries (%d files, %d empty dirs, %s)",
		enumeration.Total(),
		enumeration.Info.TotalFileCount,
		enumeration.Info.EmptyDirCount,
		L.HumanReadableBytes(enumeration.Info.SizeInBytes)))
	p.UpdateStatus(ctx, STATUS_PLANNED)
	return nil
}

func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	enumeration, tracker := p.enumeration, p.tracker
	p.mu.Unlock()
	if enumeration == nil {
		return fmt.Errorf("archive: Start called before Plan")
	}

	out, err := p.open()
	if err != nil {
		p.UpdateStatus(ctx, STATUS_FAILED)
		return err
	}
	p.UpdateStatus(ctx, STATUS_RUNNING)
	startTime := time.Now()

	gateway := NewGateway(out.Container)
	status := &progress.WorkingStatus{}
	processor := NewProcessor(gateway, tracker, status)
	display := p.opts.NewDisplay(enumeration.Total())
	reporter := progress.NewReporter(tracker, status, display, p.opts.Tuning)
	reporter.Start()

	var runErr error
	switch p.opts.Mode {
	case config.PIPELINE_PIPE:
		runErr = p.runPipe(ctx, enumeration.Entries, processor)
	default:
		runErr = p.runFanout(ctx, enumeration.Entries, processor)
	}

	// every producer has returned, the archive can be closed
	finishErr := gateway.Finish()
	sinkErr := out.Sink.Close()
	fileErr := out.File.Close()
	err = errors.Join(runErr, finishErr, sinkErr, fileErr)

	result := &Result{
		Total:     enumeration.Total(),
		Completed: tracker.Completed(),
		Appended:  gateway.Appended(),
		Skipped:   processor.Skipped(),
		Warnings:  processor.Warnings(),
		Entries:   processor.Appended(),
		Duration:  time.Since(startTime),
	}
	if err == nil && out.Path != "" {
		info, statErr := file_io.GetFileInfo(out.Path)
		if statErr == nil {
			result.OutputSize = info.Size
		}
	}

	var finalMsg string
	if err == nil {
		finalMsg = fmt.Sprintf("Archiving: Done (%d/%d) (%s -> %s)",
			result.Completed,
			result.Total,
			L.HumanReadableBytes(enumeration.Info.SizeInBytes),
			L.HumanReadableBytes(result.OutputSize))
		if result.Skipped > 0 {
			finalMsg += fmt.Sprintf(" (%d skipped)", result.Skipped)
		}
	}
	reporter.Stop(finalMsg)
	display.Close()

	p.mu.Lock()
	p.result = result
	p.mu.Unlock()

	if err != nil {
		if out.Path != "" {
			L.Debug(fmt.Sprintf("Removing incomplete archive %s", out.Path))
			os.Remove(out.Path)
		}
		if ctx.Err() != nil {
			p.UpdateStatus(ctx, STATUS_ABORTED)
		} else {
			p.UpdateStatus(ctx, STATUS_FAILED)
		}
		return err
	}
	if result.Skipped > 0 {
		L.Info(fmt.Sprintf("Skipped %d of %d entries", result.Skipped, result.Total))
	}
	L.Info(fmt.Sprintf("Took: %s", L.HumanReadableTime(result.Duration.Milliseconds())))
	p.UpdateStatus(ctx, STATUS_COMPLETED)
	return nil
}

func (p *Pipeline) runFanout(ctx context.Context, entries []file_io.Entry, processor *Processor) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.opts.Workers, 1))
	for _, entry := range entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return processor.Process(gctx, entry)
		})
	}
	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		L.Debug("Received abort signal, stopped dispatching entries")
		return ctx.Err()
	}
	return err
}

func (p *Pipeline) runPipe(ctx context.Context, entries []file_io.Entry, processor *Processor) error {
	queue := make(chan file_io.Entry, max(p.opts.QueueSize, 0))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(queue)
		for _, entry := range entries {
			select {
			case queue <- entry:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})
	g.Go(func() error {
		for entry := range queue {
			if gctx.Err() != nil {
				return nil
			}
			if err := processor.Process(gctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		L.Debug("Received abort signal, stopped consuming entries")
		return ctx.Err()
	}
	return err
}

func (p *Pipeline) GetInfo(ctx context.Context) *file_io.FilesInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enumeration == nil {
		return nil
	}
	return p.enumeration.Info
}

func (p *Pipeline) GetProgress(ctx context.Context) (*Progress, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tracker == nil {
		return &Progress{Status: p.status}, nil
	}
	s := p.tracker.Snapshot()
	return &Progress{Done: s.Completed, Total: s.Total, Status: p.status}, nil
}

func (p *Pipeline) GetArchiveFilePath(ctx context.Context) string {
	return p.task.OutputPath
}

func (p *Pipeline) GetResult(ctx context.Context) *Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}
