package archive

import (
	"arkiv/container"
	"errors"
	"sync"
)

var (
	ErrGatewayFinished = errors.New("archive: append after finish")
	ErrAlreadyFinished = errors.New("archive: finish called twice")
)

// Gateway is the single serialization point in front of a container writer.
// Appends never interleave, and Finish runs once after the last append.
type Gateway struct {
	mu       sync.Mutex
	w        container.Writer
	finished bool
	appended uint64
}

func NewGateway(w container.Writer) *Gateway {
	return &Gateway{w: w}
}

func (g *Gateway) AppendFile(h container.Header, data []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finished {
		return ErrGatewayFinished
	}
	if err := g.w.AppendFile(h, data); err != nil {
		return err
	}
	g.appended++
	return nil
}

func (g *Gateway) AppendDirectory(h container.Header) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finished {
		return ErrGatewayFinished
	}
	if err := g.w.AppendDirectory(h); err != nil {
		return err
	}
	g.appended++
	return nil
}

// FitName does not touch the writer state and needs no lock.
func (g *Gateway) FitName(name string) (string, bool) {
	return g.w.FitName(name)
}

func (g *Gateway) Finish() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finished {
		return ErrAlreadyFinished
	}
	g.finished = true
	return g.w.Finish()
}

func (g *Gateway) Appended() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.appended
}

func isFatal(err error) bool {
	return errors.Is(err, ErrGatewayFinished) ||
		errors.Is(err, ErrAlreadyFinished) ||
		errors.Is(err, container.ErrWriterClosed)
}
