package tui

import (
	"arkiv/database"
	"arkiv/database/model"
	"arkiv/database/repository"
	L "arkiv/logger"
	"context"
	"path"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusContent
)

type tabId int

const (
	tabStatus tabId = iota
	tabFiles
)

// number of archives shown in the sidebar
const archiveListLimit = 50

type tickMsg struct{}

type archivesMsg []model.Archive

type entriesMsg []model.ArchiveEntryRow

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

type modelTui struct {
	ctx               context.Context
	archiveRepo       repository.ArchiveRepository
	entryRepo         repository.EntryRepository
	archives          []model.Archive
	entries           []model.ArchiveEntryRow
	sidebarCursor     int
	contentCursor     int
	contentOffset     int
	selectedArchiveId int64
	currentDir        string
	focus             focusArea
	activeTab         tabId
	width             int
	height            int
}

func NewApp(ctx context.Context, db *database.DB) *modelTui {
	return newApp(ctx, repository.NewArchiveRepository(db), repository.NewEntryRepository(db))
}

func newApp(ctx context.Context, archiveRepo repository.ArchiveRepository, entryRepo repository.EntryRepository) *modelTui {
	return &modelTui{
		ctx:         ctx,
		archiveRepo: archiveRepo,
		entryRepo:   entryRepo,
		currentDir:  "",
		focus:       focusSidebar,
		activeTab:   tabStatus,
	}
}

func (m modelTui) Init() tea.Cmd {
	return tea.Batch(m.fetchArchives, tick())
}

func (m modelTui) fetchArchives() tea.Msg {
	archives, err := m.archiveRepo.ListArchives(m.ctx, archiveListLimit)
	if err != nil {
		L.Error("tui: failed to fetch archives: %v", err)
		return archivesMsg{}
	}
	return archivesMsg(archives)
}

func (m modelTui) fetchEntries() tea.Msg {
	if m.selectedArchiveId == 0 {
		return nil
	}
	entries, err := m.entryRepo.GetByParentPath(m.ctx, m.selectedArchiveId, m.currentDir)
	if err != nil {
		L.Error("tui: failed to fetch entries for archive %d: %v", m.selectedArchiveId, err)
		return entriesMsg{}
	}
	return entriesMsg(entries)
}

func (m *modelTui) currentArchive() *model.Archive {
	for i := range m.archives {
		if m.archives[i].Id == m.selectedArchiveId {
			return &m.archives[i]
		}
	}
	return nil
}

func (m *modelTui) selectArchive(idx int) {
	m.sidebarCursor = idx
	m.selectedArchiveId = m.archives[idx].Id
	m.currentDir = ""
	m.contentCursor = 0
	m.contentOffset = 0
}

func (m *modelTui) goBack() {
	if m.currentDir != "" {
		parent := path.Dir(m.currentDir)
		if parent == "." {
			parent = ""
		}
		m.currentDir = parent
		m.contentCursor = 0
		m.contentOffset = 0
	}
}

func (m *modelTui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.fetchArchives, tick())

	case archivesMsg:
		m.archives = msg
		if m.sidebarCursor >= len(m.archives) {
			m.sidebarCursor = max(len(m.archives)-1, 0)
		}
		if m.selectedArchiveId == 0 && len(m.archives) > 0 {
			m.selectArchive(0)
			return m, m.fetchEntries
		}

	case entriesMsg:
		m.entries = msg

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "1":
			m.focus = focusSidebar

		case "2":
			m.focus = focusContent

		case "tab":
			if m.focus == focusSidebar {
				m.focus = focusContent
			} else {
				m.focus = focusSidebar
			}

		case "3", "s", "S":
			if m.focus == focusContent {
				m.activeTab = tabStatus
			}

		case "4", "f", "F":
			if m.focus == focusContent {
				m.activeTab = tabFiles
				return m, m.fetchEntries
			}

		case "up", "k":
			if m.focus == focusSidebar {
				if m.sidebarCursor > 0 {
					m.selectArchive(m.sidebarCursor - 1)
					return m, m.fetchEntries
				}
			} else if m.activeTab == tabFiles {
				if m.contentCursor > 0 {
					m.contentCursor--
					if m.contentCursor < m.contentOffset {
						m.contentOffset = m.contentCursor
					}
				}
			}

		case "down", "j":
			if m.focus == focusSidebar {
				if m.sidebarCursor < len(m.archives)-1 {
					m.selectArchive(m.sidebarCursor + 1)
					return m, m.fetchEntries
				}
			} else if m.activeTab == tabFiles {
				if m.contentCursor < len(m.entries) {
					m.contentCursor++
					// handwaving space for entry list
					maxVisible := max(m.height-18, 1)
					if m.contentCursor >= m.contentOffset+maxVisible {
						m.contentOffset = m.contentCursor - maxVisible + 1
					}
				}
			}

		case "enter", "l", "right":
			if m.focus == focusContent && m.activeTab == tabFiles {
				if m.contentCursor == 0 {
					m.goBack()
					return m, m.fetchEntries
				} else if len(m.entries) >= m.contentCursor {
					e := m.entries[m.contentCursor-1]
					if e.EntryType == "dir" || e.EntryType == "empty_dir" {
						m.currentDir = e.FullPath
						m.contentCursor = 0
						m.contentOffset = 0
						return m, m.fetchEntries
					}
				}
			}

		case "esc", "h", "left":
			if m.focus == focusContent && m.activeTab == tabFiles {
				m.goBack()
				return m, m.fetchEntries
			}
		}
	}

	return m, nil
}
