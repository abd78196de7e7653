package progress

import (
	L "arkiv/logger"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Renderable is a bar or spinner the reporter drives.
type Renderable interface {
	SetPosition(pos uint64)
	SetMessage(msg string)
	FinishWithMessage(msg string)
}

// Display groups the spinner showing the working status and the bar
// showing overall progress.
type Display interface {
	Status() Renderable
	Total() Renderable
	Close()
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	etaStyle     = lipgloss.NewStyle().Faint(true)
)

const statusWidth = 64

// FooterDisplay draws a two line footer below the log output.
type FooterDisplay struct {
	mu             sync.Mutex
	total          uint64
	position       uint64
	statusMsg      string
	barMsg         string
	frame          int
	statusFinished bool
	barFinished    bool
	status         *footerRenderable
	bar            *footerRenderable
}

func NewFooterDisplay(total uint64) *FooterDisplay {
	d := &FooterDisplay{total: total}
	d.status = &footerRenderable{d: d, isStatus: true}
	d.bar = &footerRenderable{d: d}
	return d
}

func (d *FooterDisplay) Status() Renderable {
	return d.status
}

func (d *FooterDisplay) Total() Renderable {
	return d.bar
}

func (d *FooterDisplay) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statusFinished = true
	d.barFinished = true
	L.Footer(L.INFO, "")
}

// must be called with d.mu held
func (d *FooterDisplay) redraw() {
	lines := make([]string, 0, 2)
	if !d.statusFinished {
		lines = append(lines, spinnerStyle.Render(spinnerFrames[d.frame])+" "+
			L.TruncateString(d.statusMsg, statusWidth, L.TRUNC_CENTER))
	}
	if !d.barFinished {
		pct := Snapshot{Completed: d.position, Total: d.total}.Percentage()
		lines = append(lines, fmt.Sprintf("%s %6.2f%% (%d/%d) %s",
			barStyle.Render(L.ProgressBar(pct, 32)),
			pct,
			d.position,
			d.total,
			etaStyle.Render(d.barMsg)))
	}
	L.Footer(L.INFO, strings.Join(lines, "\n"))
}

type footerRenderable struct {
	d        *FooterDisplay
	isStatus bool
}

func (r *footerRenderable) SetPosition(pos uint64) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if r.isStatus {
		return
	}
	r.d.position = min(pos, r.d.total)
	r.d.redraw()
}

func (r *footerRenderable) SetMessage(msg string) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if r.isStatus {
		r.d.statusMsg = msg
		r.d.frame = (r.d.frame + 1) % len(spinnerFrames)
	} else {
		r.d.barMsg = msg
	}
	r.d.redraw()
}

func (r *footerRenderable) FinishWithMessage(msg string) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if r.isStatus {
		r.d.statusFinished = true
	} else {
		r.d.barFinished = true
	}
	r.d.redraw()
	if msg != "" {
		L.Println(msg)
	}
}

// QuietDisplay renders nothing.
type QuietDisplay struct{}

func NewQuietDisplay() QuietDisplay {
	return QuietDisplay{}
}

func (QuietDisplay) Status() Renderable { return quietRenderable{} }
func (QuietDisplay) Total() Renderable  { return quietRenderable{} }
func (QuietDisplay) Close()             {}

type quietRenderable struct{}

func (quietRenderable) SetPosition(uint64)       {}
func (quietRenderable) SetMessage(string)        {}
func (quietRenderable) FinishWithMessage(string) {}
