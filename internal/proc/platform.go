package proc

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
)

// entry is one row of the OS process table: just identity and image name.
type entry struct {
	PID  int
	Name string
}

// platform abstracts how the process table is read on each OS.
type platform interface {
	// List returns every visible process. Entries the OS refuses to
	// describe are simply omitted, not errors.
	List() ([]entry, error)
	// ExecutablePath resolves the on-disk path of a running process.
	ExecutablePath(pid int) (string, error)
	// MatchName compares a process image name against a query using the
	// OS-default comparison semantics.
	MatchName(imageName, query string) bool
	Name() string
}

// DetectPlatform picks the process-table strategy for the current OS.
func DetectPlatform() platform {
	switch runtime.GOOS {
	case "linux":
		return &procfsPlatform{root: "/proc"}
	case "windows":
		return &windowsPlatform{}
	default:
		// ps is POSIX; good enough for macOS and the BSDs.
		return &psPlatform{}
	}
}

// alive reports whether pid names a live process. Uses the signal-0
// probe via os.FindProcess so it compiles on every OS; on Windows the
// probe degrades to an open-handle check.
func alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		// FindProcess on Windows fails for dead pids, so reaching
		// here already means the handle opened.
		return true
	}
	// On Unix FindProcess always succeeds; signal 0 does the real check.
	return process.Signal(syscall.Signal(0)) == nil
}

// procfsPlatform reads the Linux process table straight from /proc.
// The root is a field so tests can point it at a fixture tree.
type procfsPlatform struct {
	root string
}

func (p *procfsPlatform) Name() string { return "procfs" }

func (p *procfsPlatform) List() ([]entry, error) {
	dirs, err := os.ReadDir(p.root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.root, err)
	}

	var entries []entry
	for _, dir := range dirs {
		pid := parsePID(dir.Name())
		if pid <= 0 {
			continue
		}
		// comm holds the image name without path or arguments, which is
		// exactly the matching key we want.
		comm, err := os.ReadFile(filepath.Join(p.root, dir.Name(), "comm"))
		if err != nil {
			continue // process vanished or is off-limits; skip
		}
		entries = append(entries, entry{PID: pid, Name: strings.TrimSpace(string(comm))})
	}
	return entries, nil
}

func (p *procfsPlatform) ExecutablePath(pid int) (string, error) {
	path, err := os.Readlink(filepath.Join(p.root, fmt.Sprintf("%d", pid), "exe"))
	if err != nil {
		return "", fmt.Errorf("resolving executable of pid %d: %w", pid, err)
	}
	return path, nil
}

func (p *procfsPlatform) MatchName(imageName, query string) bool {
	return matchExact(imageName, query)
}

// psPlatform shells out to ps(1), the portable Unix fallback.
type psPlatform struct{}

func (p *psPlatform) Name() string { return "ps" }

func (p *psPlatform) List() ([]entry, error) {
	out, err := exec.Command("ps", "-axo", "pid=,comm=").Output()
	if err != nil {
		return nil, fmt.Errorf("running ps: %w", err)
	}
	return parsePSOutput(string(out)), nil
}

func (p *psPlatform) ExecutablePath(pid int) (string, error) {
	// comm from ps on macOS is the full executable path for most
	// processes; the base-name case means the path is unobtainable.
	out, err := exec.Command("ps", "-o", "comm=", "-p", fmt.Sprintf("%d", pid)).Output()
	if err != nil {
		return "", fmt.Errorf("resolving executable of pid %d: %w", pid, err)
	}
	path := strings.TrimSpace(string(out))
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("executable path of pid %d not absolute: %q", pid, path)
	}
	return path, nil
}

func (p *psPlatform) MatchName(imageName, query string) bool {
	return matchExact(imageName, query)
}

// windowsPlatform shells out to tasklist and wmic. The corpus of Go
// agents does exactly this rather than binding the Win32 API.
type windowsPlatform struct{}

func (p *windowsPlatform) Name() string { return "tasklist" }

func (p *windowsPlatform) List() ([]entry, error) {
	out, err := exec.Command("tasklist", "/fo", "csv", "/nh").Output()
	if err != nil {
		return nil, fmt.Errorf("running tasklist: %w", err)
	}
	return parseTasklistCSV(string(out)), nil
}

func (p *windowsPlatform) ExecutablePath(pid int) (string, error) {
	out, err := exec.Command("wmic", "process", "where",
		fmt.Sprintf("ProcessId=%d", pid), "get", "ExecutablePath", "/value").Output()
	if err != nil {
		return "", fmt.Errorf("resolving executable of pid %d: %w", pid, err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if value, ok := strings.CutPrefix(line, "ExecutablePath="); ok && value != "" {
			return value, nil
		}
	}
	return "", fmt.Errorf("no executable path reported for pid %d", pid)
}

func (p *windowsPlatform) MatchName(imageName, query string) bool {
	// Windows filenames are case-insensitive, and users routinely leave
	// off the .exe suffix.
	if strings.EqualFold(imageName, query) {
		return true
	}
	return strings.EqualFold(imageName, query+".exe")
}

// matchExact is the Unix comparison: exact match on the image name,
// tolerating a full path as the query.
func matchExact(imageName, query string) bool {
	return imageName == query || imageName == filepath.Base(query)
}
