package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconServer      = "º" // Server spec segment (fixed prefix)
	IconApplication = "◆" // Dynamic segment tracking the debuggee
	IconOther       = "≈" // Segment this tool did not write
	IconMissing     = "✗" // Directory does not exist
	IconOK          = " " // Space (OK - no icon to reduce noise)
	IconRunning     = "▶" // Debuggee currently running
	IconStopped     = "·" // Debuggee not found
)
