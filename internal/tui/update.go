package tui

import (
	"sympath/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// MsgEvent carries one watcher poll outcome into the TUI.
type MsgEvent watch.Event

// listenForEvents blocks on the watcher's event channel and converts
// the next event into a message. Re-issued after every event so the
// stream keeps flowing.
func listenForEvents(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		return MsgEvent(<-w.Events())
	}
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.LogViewport.Width = msg.Width / 2
		m.LogViewport.Height = msg.Height - 8 // minus title, status, footer
		m.refreshLog()
		return m, nil

	case MsgEvent:
		ev := watch.Event(msg)
		m.Report = ev.Report
		m.HaveReport = true

		// Idle and unchanged polls would drown the log; only record
		// transitions and failures.
		switch ev.Kind {
		case watch.EventSynced, watch.EventLost, watch.EventFailed:
			m.EventLog = append(m.EventLog, ev)
			if len(m.EventLog) > maxLogEntries {
				m.EventLog = m.EventLog[len(m.EventLog)-maxLogEntries:]
			}
			m.refreshLog()
		}

		if m.SelectedIdx >= len(m.Report.Segments) {
			m.SelectedIdx = 0
		}
		return m, listenForEvents(m.Watcher)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "down", "j":
			if m.SelectedIdx < len(m.Report.Segments)-1 {
				m.SelectedIdx++
			}
		case "d":
			m.ShowDiagnostics = !m.ShowDiagnostics
		case "v":
			m.Verbose = !m.Verbose
		case "p":
			if m.Paused {
				m.Watcher.Resume()
			} else {
				m.Watcher.Pause()
			}
			m.Paused = !m.Paused
		case "pgup":
			m.LogViewport.HalfViewUp()
		case "pgdown":
			m.LogViewport.HalfViewDown()
		}
	}

	return m, nil
}

// refreshLog re-renders the event log into the viewport, keeping the
// newest entries visible.
func (m *AppModel) refreshLog() {
	m.LogViewport.SetContent(renderEventLog(m.EventLog, m.LogViewport.Width))
	m.LogViewport.GotoBottom()
}
