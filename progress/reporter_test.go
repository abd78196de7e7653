package progress

import (
	L "arkiv/logger"
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderable struct {
	mu        sync.Mutex
	positions []uint64
	messages  []string
	finished  string
	done      bool
}

func (r *recordingRenderable) SetPosition(pos uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions = append(r.positions, pos)
}

func (r *recordingRenderable) SetMessage(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingRenderable) FinishWithMessage(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = msg
	r.done = true
}

func (r *recordingRenderable) hasMessage(msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m == msg {
			return true
		}
	}
	return false
}

func (r *recordingRenderable) messageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

type recordingDisplay struct {
	status recordingRenderable
	bar    recordingRenderable
}

func (d *recordingDisplay) Status() Renderable { return &d.status }
func (d *recordingDisplay) Total() Renderable  { return &d.bar }
func (d *recordingDisplay) Close()             {}

func fastTuning() Tuning {
	tuning := DefaultTuning()
	tuning.StatusInterval = 5 * time.Millisecond
	tuning.EtaInterval = 10 * time.Millisecond
	return tuning
}

func TestReporter(t *testing.T) {
	tracker := NewTracker(3, fastTuning())
	status := &WorkingStatus{}
	display := &recordingDisplay{}
	r := NewReporter(tracker, status, display, fastTuning())
	r.Start()

	assert.True(t, display.status.hasMessage("-> Switching directories..."))
	assert.True(t, display.bar.hasMessage("ETA: Calculating..."))

	status.Set("a.txt")
	assert.Eventually(t, func() bool {
		return display.status.hasMessage("-> Compressing: a.txt")
	}, time.Second, 5*time.Millisecond)

	tracker.Increment()
	tracker.Increment()
	tracker.Increment()
	r.Stop("Archiving: Done")
	r.Stop("ignored")

	statusCount := display.status.messageCount()
	barCount := display.bar.messageCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, statusCount, display.status.messageCount())
	assert.Equal(t, barCount, display.bar.messageCount())

	assert.True(t, display.bar.done)
	assert.Equal(t, "Archiving: Done", display.bar.finished)
	assert.True(t, display.status.done)
	require.NotEmpty(t, display.bar.positions)
	assert.Equal(t, uint64(3), display.bar.positions[len(display.bar.positions)-1])
}

func TestFooterDisplay(t *testing.T) {
	var out bytes.Buffer
	L.SetOutput(&out, &out)
	defer L.SetOutput(os.Stdout, os.Stderr)
	require.NoError(t, L.SetColorMode(L.COLOR_MODE_NEVER))

	d := NewFooterDisplay(4)
	d.Status().SetMessage(StatusMessage("a.txt"))
	d.Total().SetPosition(2)
	d.Total().SetMessage("ETA: 1s")
	s := out.String()
	assert.Contains(t, s, "-> Compressing: a.txt")
	assert.Contains(t, s, "50.00% (2/4) ETA: 1s")

	out.Reset()
	d.Status().FinishWithMessage("")
	d.Total().FinishWithMessage("Archiving: Done")
	d.Close()
	assert.Contains(t, out.String(), "Archiving: Done\n")
	assert.False(t, strings.HasSuffix(out.String(), "ETA: 1s\n"))
}

func TestQuietDisplay(t *testing.T) {
	d := NewQuietDisplay()
	d.Status().SetMessage("x")
	d.Total().SetPosition(1)
	d.Total().FinishWithMessage("done")
	d.Close()
}
