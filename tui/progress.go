package tui

import (
	L "arkiv/logger"
	"arkiv/progress"
	"arkiv/tui/components"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type positionMsg uint64

type statusMsg string

type etaMsg string

type finishMsg struct {
	isStatus bool
	message  string
}

type logLineMsg string

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const progressBarWidth = 40

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(components.ColorPurple)
	barStyle     = lipgloss.NewStyle().Foreground(components.ColorGreen)
)

// progressModel renders the archiving status in an inline bubbletea program.
type progressModel struct {
	total          uint64
	position       uint64
	status         string
	eta            string
	frame          int
	statusFinished bool
	barFinished    bool
	final          string
}

func newProgressModel(total uint64) progressModel {
	return progressModel{total: total}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case positionMsg:
		m.position = min(uint64(msg), m.total)
	case statusMsg:
		m.status = string(msg)
		m.frame = (m.frame + 1) % len(spinnerFrames)
	case etaMsg:
		m.eta = string(msg)
	case finishMsg:
		if msg.isStatus {
			m.statusFinished = true
		} else {
			m.barFinished = true
			m.final = msg.message
		}
	case logLineMsg:
		return m, tea.Println(string(msg))
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	var sb strings.Builder
	if !m.statusFinished {
		sb.WriteString(spinnerStyle.Render(spinnerFrames[m.frame]) + " " +
			L.TruncateString(m.status, 64, L.TRUNC_CENTER) + "\n")
	}
	if !m.barFinished {
		pct := progress.Snapshot{Completed: m.position, Total: m.total}.Percentage()
		sb.WriteString(fmt.Sprintf("%s %6.2f%% (%d/%d) %s\n",
			barStyle.Render(L.ProgressBar(pct, progressBarWidth)),
			pct,
			m.position,
			m.total,
			components.DimStyle.Render(m.eta)))
	} else if m.final != "" {
		sb.WriteString(components.GreenStyle.Render(m.final) + "\n")
	}
	return sb.String()
}

// ProgressDisplay drives a progressModel running in its own goroutine.
// Log lines are printed above the live view while it runs.
type ProgressDisplay struct {
	p         *tea.Program
	done      chan struct{}
	closeOnce sync.Once
	status    *teaRenderable
	bar       *teaRenderable
}

func NewProgressDisplay(total uint64, opts ...tea.ProgramOption) *ProgressDisplay {
	opts = append([]tea.ProgramOption{tea.WithInput(nil), tea.WithoutSignalHandler()}, opts...)
	p := tea.NewProgram(newProgressModel(total), opts...)
	d := &ProgressDisplay{p: p, done: make(chan struct{})}
	d.status = &teaRenderable{p: p, isStatus: true}
	d.bar = &teaRenderable{p: p}

	L.SetPrintHook(func(s string) {
		p.Send(logLineMsg(s))
	})
	go func() {
		defer close(d.done)
		_, err := p.Run()
		if err != nil {
			L.SetPrintHook(nil)
			L.Debug("tui: progress display stopped: %v", err)
		}
	}()
	return d
}

func (d *ProgressDisplay) Status() progress.Renderable {
	return d.status
}

func (d *ProgressDisplay) Total() progress.Renderable {
	return d.bar
}

// Close waits for the program to render its final view and exit.
func (d *ProgressDisplay) Close() {
	d.closeOnce.Do(func() {
		d.p.Quit()
		<-d.done
		L.SetPrintHook(nil)
	})
}

type teaRenderable struct {
	p        *tea.Program
	isStatus bool
}

func (r *teaRenderable) SetPosition(pos uint64) {
	if r.isStatus {
		return
	}
	r.p.Send(positionMsg(pos))
}

func (r *teaRenderable) SetMessage(msg string) {
	if r.isStatus {
		r.p.Send(statusMsg(msg))
	} else {
		r.p.Send(etaMsg(msg))
	}
}

func (r *teaRenderable) FinishWithMessage(msg string) {
	r.p.Send(finishMsg{isStatus: r.isStatus, message: msg})
}
