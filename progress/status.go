package progress

import "sync"

// WorkingStatus names the entry currently being processed. Under parallel
// execution the last writer wins.
type WorkingStatus struct {
	mu      sync.Mutex
	current string
}

func (w *WorkingStatus) Set(s string) {
	w.mu.Lock()
	w.current = s
	w.mu.Unlock()
}

func (w *WorkingStatus) Get() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *WorkingStatus) Clear() {
	w.Set("")
}
