// Package env binds the sympath service's consumed interfaces to the
// real OS: process environment variables and the filesystem.
package env

import (
	"os"
	"os/exec"
	"runtime"

	"sympath/internal/model"
)

// OSStore reads and writes the process environment. On Windows it also
// persists writes to the user environment through setx, so the value
// survives this process and reaches a debugger started afterwards.
type OSStore struct {
	// Persist disables the setx side effect when false; tests and
	// non-Windows hosts run with the process environment only.
	Persist bool
}

// NewOSStore returns a store that persists on Windows and stays
// process-local elsewhere.
func NewOSStore() *OSStore {
	return &OSStore{Persist: runtime.GOOS == "windows"}
}

func (s *OSStore) Get(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Set accepts or rejects a write as a whole: on a false return the
// variable still holds its previous value, both in this process and in
// the persisted user environment.
func (s *OSStore) Set(name, value string) bool {
	// setx writes HKCU\Environment and broadcasts the change. Its hard
	// 1024-character truncation limit is exactly the kind of rejection
	// the service expects a store to report, and it has to be checked
	// before anything is written.
	if s.Persist && len(value) > 1024 {
		return false
	}

	old, hadOld := os.LookupEnv(name)
	if err := os.Setenv(name, value); err != nil {
		return false
	}
	if s.Persist {
		if err := exec.Command("setx", name, value).Run(); err != nil {
			// Roll the process-local write back so the two halves of
			// the store never disagree.
			if hadOld {
				os.Setenv(name, old)
			} else {
				os.Unsetenv(name)
			}
			return false
		}
	}
	return true
}

// OSChecker answers directory-existence queries from the filesystem.
type OSChecker struct{}

func (OSChecker) DirExists(path string) bool {
	return model.DirExists(path)
}
