package proc

import (
	"path/filepath"
	"strconv"
	"strings"
)

// parsePID converts a /proc directory name to a pid, or 0 when the name
// is not numeric (/proc has plenty of non-process entries).
func parsePID(name string) int {
	pid, err := strconv.Atoi(name)
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

// parsePSOutput parses `ps -axo pid=,comm=` output. Each line is a
// right-aligned pid followed by the command, which may itself contain
// spaces (application bundles on macOS), so only the first field splits.
func parsePSOutput(out string) []entry {
	var entries []entry
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pidStr, comm, found := strings.Cut(line, " ")
		if !found {
			continue
		}
		pid, err := strconv.Atoi(pidStr)
		if err != nil || pid <= 0 {
			continue
		}
		// comm is often a full path; matching happens on the base name.
		entries = append(entries, entry{PID: pid, Name: filepath.Base(strings.TrimSpace(comm))})
	}
	return entries
}

// parseTasklistCSV parses `tasklist /fo csv /nh` output:
// "Image Name","PID","Session Name","Session#","Mem Usage"
// tasklist quotes every field, so a hand-rolled unquote beats pulling in
// encoding/csv with its multi-line record handling.
func parseTasklistCSV(out string) []entry {
	var entries []entry
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := splitCSVQuoted(line)
		if len(fields) < 2 {
			continue
		}
		pid, err := strconv.Atoi(fields[1])
		if err != nil || pid <= 0 {
			continue
		}
		entries = append(entries, entry{PID: pid, Name: fields[0]})
	}
	return entries
}

// splitCSVQuoted splits a line of fully-quoted CSV fields, the only form
// tasklist emits. Splitting on the quote-comma-quote delimiter keeps
// commas inside a field (image names can contain them) from shifting
// the columns. Embedded quotes do not occur in image names.
func splitCSVQuoted(line string) []string {
	line = strings.TrimPrefix(line, `"`)
	line = strings.TrimSuffix(line, `"`)
	return strings.Split(line, `","`)
}
