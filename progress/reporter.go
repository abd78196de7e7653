package progress

import (
	"sync"
	"time"
)

// Reporter refreshes a Display from a Tracker and a WorkingStatus on two
// independent tickers. Rendering never blocks the tracker.
type Reporter struct {
	tracker  *Tracker
	status   *WorkingStatus
	display  Display
	tuning   Tuning
	stop     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewReporter(tracker *Tracker, status *WorkingStatus, display Display, tuning Tuning) *Reporter {
	return &Reporter{
		tracker: tracker,
		status:  status,
		display: display,
		tuning:  tuning,
		stop:    make(chan struct{}),
	}
}

func StatusMessage(current string) string {
	if current == "" {
		return "-> Switching directories..."
	}
	return "-> Compressing: " + current
}

func (r *Reporter) Start() {
	r.renderStatus()
	r.renderEta()
	r.wg.Add(2)
	go r.tick(r.tuning.StatusInterval, r.renderStatus)
	go r.tick(r.tuning.EtaInterval, r.renderEta)
}

// Stop halts both tickers, waits for them and renders the final state.
// Calls after the first are no-ops.
func (r *Reporter) Stop(msg string) {
	r.stopOnce.Do(func() {
		close(r.stop)
		r.wg.Wait()
		r.display.Total().SetPosition(r.tracker.Completed())
		r.display.Status().FinishWithMessage("")
		r.display.Total().FinishWithMessage(msg)
	})
}

func (r *Reporter) tick(interval time.Duration, render func()) {
	defer r.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			render()
		}
	}
}

func (r *Reporter) renderStatus() {
	r.display.Status().SetMessage(StatusMessage(r.status.Get()))
	r.display.Total().SetPosition(r.tracker.Completed())
}

func (r *Reporter) renderEta() {
	r.display.Total().SetMessage(r.tracker.ETAString())
}
