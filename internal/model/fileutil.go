package model

import (
	"os"
	"path/filepath"
	"strings"
)

// Symbol file extensions worth counting when sizing up a directory.
// PDB is the Windows program-database format this tool exists for; DBG is
// the older format some toolchains still emit.
var symbolExtensions = []string{".pdb", ".dbg"}

// ExpandTilde expands ~ to the user's home directory.
func ExpandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			return home
		}
	}
	return path
}

// DirExists reports whether path names an existing directory.
// A file with the same name does not count.
func DirExists(path string) bool {
	info, err := os.Stat(ExpandTilde(path))
	return err == nil && info.IsDir()
}

// CountSymbolFiles counts symbol files directly inside dir (no recursion;
// debuggers look next to the binary, not in subtrees). Unreadable or
// missing directories count as zero rather than erroring: the caller is
// annotating a display, not validating anything.
func CountSymbolFiles(dir string) int {
	entries, err := os.ReadDir(ExpandTilde(dir))
	if err != nil {
		return 0
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range symbolExtensions {
			if ext == want {
				count++
				break
			}
		}
	}
	return count
}

// Annotate fills in the on-disk annotations for each segment. Server
// specs are skipped: "*SRV" is not a directory and should not be flagged
// as missing.
func Annotate(segments []Segment) []Segment {
	for i := range segments {
		if segments[i].Kind == KindServer {
			continue
		}
		segments[i].Exists = DirExists(segments[i].Value)
		if segments[i].Exists {
			segments[i].SymbolFiles = CountSymbolFiles(segments[i].Value)
		}
	}
	return segments
}
