package tui

import (
	"sympath/internal/model"
	"sympath/internal/sympath"
	"sympath/internal/watch"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// maxLogEntries caps the in-memory event log. One entry per poll, so
// this covers hours of history without unbounded growth.
const maxLogEntries = 200

// AppModel holds the TUI state. All data arrives through watcher events;
// the TUI never calls into the sync service itself.
type AppModel struct {
	// Data
	Settings   model.Settings
	Watcher    *watch.Watcher
	Report     sympath.Report
	HaveReport bool
	EventLog   []watch.Event

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg
	Paused      bool

	// View Modes
	ShowDiagnostics bool
	Verbose         bool

	// Components
	LogViewport viewport.Model
}

// InitialModel returns the initial state.
func InitialModel(settings model.Settings, watcher *watch.Watcher) AppModel {
	return AppModel{
		Settings:    settings.Normalized(),
		Watcher:     watcher,
		SelectedIdx: 0,
	}
}

// Init starts listening for watcher events.
func (m AppModel) Init() tea.Cmd {
	return listenForEvents(m.Watcher)
}
