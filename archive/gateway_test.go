package archive

import (
	"arkiv/container"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) AppendFile(h container.Header, data []byte) error {
	return m.Called(h, data).Error(0)
}

func (m *mockWriter) AppendDirectory(h container.Header) error {
	return m.Called(h).Error(0)
}

func (m *mockWriter) FitName(name string) (string, bool) {
	args := m.Called(name)
	return args.String(0), args.Bool(1)
}

func (m *mockWriter) Finish() error {
	return m.Called().Error(0)
}

func TestGatewayFinishOnce(t *testing.T) {
	w := &mockWriter{}
	w.On("AppendFile", mock.Anything, mock.Anything).Return(nil).Once()
	w.On("Finish").Return(nil).Once()

	g := NewGateway(w)
	require.NoError(t, g.AppendFile(container.Header{Name: "a", Size: 1}, []byte("a")))
	require.NoError(t, g.Finish())

	assert.ErrorIs(t, g.Finish(), ErrAlreadyFinished)
	assert.ErrorIs(t, g.AppendFile(container.Header{Name: "b"}, nil), ErrGatewayFinished)
	assert.ErrorIs(t, g.AppendDirectory(container.Header{Name: "c"}), ErrGatewayFinished)
	assert.Equal(t, uint64(1), g.Appended())
	w.AssertExpectations(t)
	w.AssertNumberOfCalls(t, "Finish", 1)
}

func TestGatewayWriterErrorDoesNotCount(t *testing.T) {
	w := &mockWriter{}
	w.On("AppendDirectory", mock.Anything).Return(errors.New("disk full"))

	g := NewGateway(w)
	assert.Error(t, g.AppendDirectory(container.Header{Name: "d", IsDir: true}))
	assert.Equal(t, uint64(0), g.Appended())
}

// overlapWriter fails the test when two calls are in flight at once.
type overlapWriter struct {
	inFlight atomic.Int32
	overlaps atomic.Int32
	calls    atomic.Int32
}

func (o *overlapWriter) enter() func() {
	if o.inFlight.Add(1) > 1 {
		o.overlaps.Add(1)
	}
	o.calls.Add(1)
	return func() { o.inFlight.Add(-1) }
}

func (o *overlapWriter) AppendFile(h container.Header, data []byte) error {
	defer o.enter()()
	runtime.Gosched()
	return nil
}

func (o *overlapWriter) AppendDirectory(h container.Header) error {
	defer o.enter()()
	return nil
}

func (o *overlapWriter) FitName(name string) (string, bool) {
	return name, true
}

func (o *overlapWriter) Finish() error {
	defer o.enter()()
	return nil
}

func TestGatewaySerializesAppends(t *testing.T) {
	w := &overlapWriter{}
	g := NewGateway(w)
	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				if i%2 == 0 {
					assert.NoError(t, g.AppendFile(container.Header{Name: "f"}, nil))
				} else {
					assert.NoError(t, g.AppendDirectory(container.Header{Name: "d"}))
				}
			}
		}()
	}
	wg.Wait()
	require.NoError(t, g.Finish())
	assert.Equal(t, int32(0), w.overlaps.Load())
	assert.Equal(t, int32(64*20+1), w.calls.Load())
	assert.Equal(t, uint64(64*20), g.Appended())
}
