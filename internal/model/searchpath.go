package model

import "strings"

// DefaultVariable is the environment variable debuggers on Windows read
// for their symbol search path. It is configurable so the tool can drive
// a differently-named variable (useful on non-Windows hosts and in tests).
const DefaultVariable = "_NT_SYMBOL_PATH"

// Separator between search path segments. The symbol path format is
// semicolon-delimited on every platform, unlike PATH.
const Separator = ";"

// SegmentKind classifies a segment of the search path.
type SegmentKind string

const (
	// KindServer is the configured fixed prefix, e.g. a symbol-server
	// specification like "*SRV" or "srv*C:\symbols*https://...".
	// It is always segment 0 and never touched after construction.
	KindServer SegmentKind = "server"

	// KindApplication is the single dynamic segment: the directory of
	// the application currently being debugged. Replaced wholesale on
	// every sync, never accumulated.
	KindApplication SegmentKind = "application"

	// KindOther is anything else found in the variable. The service
	// never writes these; seeing one means something outside this tool
	// edited the variable since the last sync.
	KindOther SegmentKind = "other"
)

// Segment is one entry of the symbol search path.
type Segment struct {
	Value string      // raw segment text (e.g. C:\Program Files\Application)
	Kind  SegmentKind // classification relative to the configured prefix

	// Annotations filled in by Annotate (not by parsing).
	Exists      bool // directory exists on disk (always false for server specs)
	SymbolFiles int  // number of symbol files directly inside the directory
}

// ParseSearchPath splits a stored variable value into segments and
// classifies each one against the configured server prefix.
// Empty segments (";;") are dropped. An empty value yields nil.
func ParseSearchPath(value, serverPrefix string) []Segment {
	if value == "" {
		return nil
	}

	var segments []Segment
	seenApplication := false
	for i, part := range strings.Split(value, Separator) {
		if part == "" {
			continue
		}

		kind := KindOther
		switch {
		case i == 0 && part == serverPrefix:
			kind = KindServer
		case !seenApplication:
			// First non-prefix segment is the dynamic one, by the
			// invariant this tool maintains. Anything after that was
			// written by someone else.
			kind = KindApplication
			seenApplication = true
		}

		segments = append(segments, Segment{Value: part, Kind: kind})
	}
	return segments
}

// FormatSearchPath builds the value the service persists: the fixed
// prefix, optionally followed by exactly one application directory.
func FormatSearchPath(serverPrefix, applicationDir string) string {
	if applicationDir == "" {
		return serverPrefix
	}
	return serverPrefix + Separator + applicationDir
}
