package sympath

import (
	"fmt"
	"strings"

	"sympath/internal/model"
)

// Report is the diagnostic picture of the stored variable, built for
// the --report/--json/web surfaces.
type Report struct {
	Variable        string
	SymbolServer    string
	StoredValue     string
	Segments        []model.Segment
	ApplicationPath string
	HasApplication  bool
	Diagnostics     []string
}

// Report reads the variable back through the store and diagnoses it
// against the invariant. It never mutates anything.
func (s *Service) Report() Report {
	r := Report{
		Variable:        s.settings.Variable,
		SymbolServer:    s.settings.SymbolServer,
		ApplicationPath: s.applicationPath,
		HasApplication:  s.hasApplication,
	}

	stored, ok := s.store.Get(s.settings.Variable)
	r.StoredValue = stored
	if !ok || stored == "" {
		r.Diagnostics = append(r.Diagnostics,
			fmt.Sprintf("%s is not set; it will be written on the next sync.", s.settings.Variable))
		return r
	}

	r.Segments = model.Annotate(model.ParseSearchPath(stored, s.settings.SymbolServer))

	if len(r.Segments) == 0 || r.Segments[0].Kind != model.KindServer {
		r.Diagnostics = append(r.Diagnostics,
			fmt.Sprintf("Segment 0 is not the configured server spec %q, so the variable was edited outside this tool.", s.settings.SymbolServer))
	}
	for _, seg := range r.Segments {
		switch {
		case seg.Kind == model.KindOther:
			r.Diagnostics = append(r.Diagnostics,
				fmt.Sprintf("Extra segment %q was not written by this tool and will be dropped on the next sync.", seg.Value))
		case seg.Kind == model.KindApplication && !seg.Exists:
			r.Diagnostics = append(r.Diagnostics,
				fmt.Sprintf("Application directory %q no longer exists.", seg.Value))
		case seg.Kind == model.KindApplication && seg.SymbolFiles == 0:
			r.Diagnostics = append(r.Diagnostics,
				fmt.Sprintf("No symbol files found in %q, the debugger will fall back to the server.", seg.Value))
		}
	}
	if s.hasApplication && stored != model.FormatSearchPath(s.settings.SymbolServer, s.applicationPath) {
		r.Diagnostics = append(r.Diagnostics,
			"Stored value differs from the last successful sync; something else changed the variable.")
	}
	return r
}

// FormatReport renders a Report as plain text for the terminal or a
// file. Verbose adds the raw stored value and per-segment detail.
func FormatReport(r Report, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Symbol search path (%s)\n", r.Variable)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 24+len(r.Variable)))

	if len(r.Segments) == 0 {
		b.WriteString("  (variable is empty)\n")
	}
	for i, seg := range r.Segments {
		icon := iconFor(seg)
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1, icon, seg.Value)
		if verbose {
			fmt.Fprintf(&b, "       kind=%s exists=%v symbol-files=%d\n",
				seg.Kind, seg.Exists, seg.SymbolFiles)
		}
	}

	b.WriteString("\n")
	if r.HasApplication {
		fmt.Fprintf(&b, "Tracking: %s\n", r.ApplicationPath)
	} else {
		b.WriteString("Tracking: (no application synchronized yet)\n")
	}

	if verbose {
		fmt.Fprintf(&b, "Raw value: %q\n", r.StoredValue)
	}

	if len(r.Diagnostics) > 0 {
		b.WriteString("\nDiagnostics:\n")
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&b, "  - %s\n", d)
		}
	}

	return b.String()
}

func iconFor(seg model.Segment) string {
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
