package archive

import (
	"arkiv/checksum"
	"arkiv/container"
	"arkiv/file_io"
	L "arkiv/logger"
	"arkiv/progress"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// AppendedEntry describes one entry written to the archive.
type AppendedEntry struct {
	Path    string
	Kind    file_io.EntryKind
	Size    int64
	Mode    uint32
	ModTime time.Time
	Sha256  string
}

// Processor turns entries into container appends. Process is safe to call
// from many goroutines.
type Processor struct {
	gateway *Gateway
	tracker *progress.Tracker
	status  *progress.WorkingStatus

	mu       sync.Mutex
	appended []AppendedEntry
	warnings []string
	skipped  uint64
}

func NewProcessor(gateway *Gateway, tracker *progress.Tracker, status *progress.WorkingStatus) *Processor {
	return &Processor{
		gateway: gateway,
		tracker: tracker,
		status:  status,
	}
}

// Process appends one entry. Per-entry failures are logged and skipped, the
// returned error is only set for gateway usage errors, which end the run.
func (p *Processor) Process(ctx context.Context, e file_io.Entry) error {
	var err error
	switch e.Kind {
	case file_io.ENTRY_FILE:
		err = p.processFile(e)
	case file_io.ENTRY_DIR, file_io.ENTRY_EMPTY_DIR:
		err = p.processDirectory(e)
	default:
		err = fmt.Errorf("unknown entry kind %d", e.Kind)
	}

	if err != nil && isFatal(err) {
		return err
	}
	if err != nil {
		p.skip(e, err)
	}
	if e.Kind.IsLeaf() {
		p.tracker.Increment()
	}
	return nil
}

func (p *Processor) processFile(e file_io.Entry) error {
	p.status.Set(e.RelPath)
	defer p.status.Clear()

	file, err := os.Open(e.AbsPath)
	if err != nil {
		return err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("no longer a regular file (mode: %s)", info.Mode().String())
	}

	size := info.Size()
	data, err := io.ReadAll(io.LimitReader(file, size+1))
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return fmt.Errorf("file changed while reading: expected %d bytes, read %d", size, len(data))
	}

	header := container.Header{
		Name:    p.fitName(e.RelPath),
		Size:    size,
		Mode:    uint32(info.Mode().Perm()),
		ModTime: info.ModTime().Truncate(time.Second),
	}
	if err := p.gateway.AppendFile(header, data); err != nil {
		return err
	}
	p.record(AppendedEntry{
		Path:    header.Name,
		Kind:    e.Kind,
		Size:    size,
		Mode:    header.Mode,
		ModTime: header.ModTime,
		Sha256:  checksum.Sha256Hex(data),
	})
	if L.IsVerbose() {
		L.Debug(fmt.Sprintf("Processed: %s (%s)", e.RelPath, L.HumanReadableBytes(uint64(size))))
	}
	return nil
}

func (p *Processor) processDirectory(e file_io.Entry) error {
	info, err := os.Stat(e.AbsPath)
	if err != nil {
		return err
	}
	header := container.Header{
		Name:    p.fitName(e.RelPath),
		Mode:    uint32(info.Mode().Perm()),
		ModTime: info.ModTime().Truncate(time.Second),
		IsDir:   true,
	}
	if err := p.gateway.AppendDirectory(header); err != nil {
		return err
	}
	p.record(AppendedEntry{
		Path:    header.Name,
		Kind:    e.Kind,
		Mode:    header.Mode,
		ModTime: header.ModTime,
	})
	return nil
}

func (p *Processor) fitName(relPath string) string {
	name, ok := p.gateway.FitName(relPath)
	if !ok {
		L.Warn(fmt.Sprintf("archive: %s cannot be stored as is, stored as %s", relPath, name))
	}
	return name
}

func (p *Processor) record(a AppendedEntry) {
	p.mu.Lock()
	p.appended = append(p.appended, a)
	p.mu.Unlock()
}

func (p *Processor) skip(e file_io.Entry, err error) {
	msg := fmt.Sprintf("archive: skipping %s due to error: %v", e.AbsPath, err)
	L.Warn(msg)
	p.mu.Lock()
	p.warnings = append(p.warnings, msg)
	p.skipped++
	p.mu.Unlock()
}

func (p *Processor) Appended() []AppendedEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]AppendedEntry(nil), p.appended...)
}

func (p *Processor) Warnings() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.warnings...)
}

func (p *Processor) Skipped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.skipped
}
