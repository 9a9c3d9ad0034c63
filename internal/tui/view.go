package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sympath/internal/model"
	"sympath/internal/watch"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("78")) // Green

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("197")) // Red
)

func (m AppModel) View() string {
	if !m.HaveReport {
		return fmt.Sprintf("\n  Looking for %s... first poll pending.\n", m.Settings.Application)
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 40 {
		netWidth = 40
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 8 {
		boxHeight = 8
	}
	interiorHeight := boxHeight - 2

	title := titleStyle.Render(fmt.Sprintf(" sympath · %s ", m.Report.Variable))
	status := m.statusLine()

	left := m.renderSegments(leftWidth, interiorHeight)
	right := m.renderDetails(rightWidth, interiorHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		borderStyle.Width(leftWidth).Height(interiorHeight).Render(left),
		borderStyle.Width(rightWidth).Height(interiorHeight).Render(right),
	)

	footer := dimStyle.Render("  ↑/↓ select · d diagnostics · v verbose · p pause · q quit")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n", title, status, body, footer)
}

func (m AppModel) statusLine() string {
	var b strings.Builder
	b.WriteString("  ")

	if m.Report.HasApplication {
		b.WriteString(okStyle.Render(model.IconRunning + " " + m.Settings.Application))
		b.WriteString(dimStyle.Render(" tracked at " + m.Report.ApplicationPath))
	} else {
		b.WriteString(dimStyle.Render(model.IconStopped + " " + m.Settings.Application + " (not synchronized yet)"))
	}

	if m.Paused {
		b.WriteString(adviceStyle.Render("   [paused]"))
	}
	return b.String()
}

func (m AppModel) renderSegments(width, height int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Search Path Segments"))
	b.WriteString("\n\n")

	if len(m.Report.Segments) == 0 {
		b.WriteString(dimStyle.Render("  (variable is empty)"))
		return b.String()
	}

	for i, seg := range m.Report.Segments {
		icon := segmentIcon(seg)
		line := fmt.Sprintf("%d. %s %s", i+1, icon, truncate(seg.Value, width-8))
		if i == m.SelectedIdx {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if m.ShowDiagnostics && len(m.Report.Diagnostics) > 0 {
		b.WriteString("\n")
		b.WriteString(panelTitleStyle.Render("Diagnostics"))
		b.WriteString("\n")
		for _, d := range m.Report.Diagnostics {
			b.WriteString(adviceStyle.Render("  - " + wrap(d, width-6)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m AppModel) renderDetails(width, height int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Details"))
	b.WriteString("\n\n")

	if m.SelectedIdx < len(m.Report.Segments) {
		seg := m.Report.Segments[m.SelectedIdx]
		b.WriteString(fmt.Sprintf("Segment:  %s\n", truncate(seg.Value, width-12)))
		b.WriteString(fmt.Sprintf("Kind:     %s\n", segmentKindLabel(seg.Kind)))
		switch seg.Kind {
		case model.KindServer:
			b.WriteString(dimStyle.Render("Configured prefix; always first, never rewritten.\n"))
		default:
			if seg.Exists {
				b.WriteString(fmt.Sprintf("Exists:   yes (%d symbol files)\n", seg.SymbolFiles))
			} else {
				b.WriteString(failStyle.Render("Exists:   no\n"))
			}
		}
		if m.Verbose {
			b.WriteString(dimStyle.Render(fmt.Sprintf("Raw value: %q\n", m.Report.StoredValue)))
		}
	}

	b.WriteString("\n")
	b.WriteString(panelTitleStyle.Render("Sync Log"))
	b.WriteString("\n")
	if len(m.EventLog) == 0 {
		b.WriteString(dimStyle.Render("  (no syncs yet)"))
	} else {
		b.WriteString(m.LogViewport.View())
	}
	return b.String()
}

// renderEventLog renders the transition log for the viewport, newest last.
func renderEventLog(events []watch.Event, width int) string {
	var b strings.Builder
	for _, ev := range events {
		ts := ev.At.Format("15:04:05")
		switch ev.Kind {
		case watch.EventSynced:
			b.WriteString(okStyle.Render(fmt.Sprintf("%s synced → %s", ts, truncate(ev.Dir, width-20))))
		case watch.EventLost:
			b.WriteString(dimStyle.Render(fmt.Sprintf("%s debuggee exited", ts)))
		case watch.EventFailed:
			b.WriteString(failStyle.Render(fmt.Sprintf("%s failed: %v", ts, ev.Err)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func segmentIcon(seg model.Segment) string {
	switch seg.Kind {
	case model.KindServer:
		return model.IconServer
	case model.KindApplication:
		if !seg.Exists {
			return model.IconMissing
		}
		return model.IconApplication
	default:
		return model.IconOther
	}
}

func segmentKindLabel(kind model.SegmentKind) string {
	switch kind {
	case model.KindServer:
		return "symbol server (fixed prefix)"
	case model.KindApplication:
		return "application directory (dynamic)"
	default:
		return "foreign (not written by sympath)"
	}
}

// truncate shortens s to max runes. Counting runes, not bytes, keeps a
// multi-byte character at the boundary from being split mid-sequence.
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func wrap(s string, width int) string {
	if width < 10 {
		return s
	}
	words := strings.Fields(s)
	var lines []string
	var current string
	for _, w := range words {
		if current == "" {
			current = w
		} else if len(current)+1+len(w) <= width {
			current += " " + w
		} else {
			lines = append(lines, current)
			current = w
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n    ")
}
