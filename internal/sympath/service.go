// Package sympath owns the symbol-search-path invariant: the stored
// variable is always the configured server prefix, followed by at most
// one dynamic segment naming the debuggee's directory.
package sympath

import (
	"errors"
	"fmt"

	"sympath/internal/model"
)

// EnvStore is the environment-variable access the service consumes.
// Set reports acceptance; a false return means the store rejected the
// write (too long, no permission) and the old value still stands.
type EnvStore interface {
	Get(name string) (string, bool)
	Set(name, value string) bool
}

// DirChecker validates candidate application directories.
type DirChecker interface {
	DirExists(path string) bool
}

var (
	// ErrNoSuchDirectory means the candidate path failed validation;
	// the stored variable was not touched.
	ErrNoSuchDirectory = errors.New("application directory does not exist")

	// ErrStoreRejected means the environment store refused the write;
	// both the stored variable and the in-memory state are unchanged.
	ErrStoreRejected = errors.New("environment store rejected the write")
)

// Service maintains the search-path value through an injected store and
// checker. It holds one mutable value (the last confirmed application
// path) and is meant to be driven by a single caller, typically the
// watcher, without internal locking.
type Service struct {
	settings model.Settings
	store    EnvStore
	checker  DirChecker

	applicationPath string
	hasApplication  bool
}

// NewService reads the variable and normalizes it to the configured
// prefix. The write happens at most once, here, and only when the
// stored value differs from the prefix (absent and empty both count as
// differing). When the value already equals the prefix exactly, nothing
// is written; construction is idempotent.
//
// A pre-existing value that is not the bare prefix is overwritten, not
// merged: preserving unknown segments cannot be reconciled with the
// single-dynamic-segment invariant, so starting clean is the safe
// default.
func NewService(settings model.Settings, store EnvStore, checker DirChecker) *Service {
	settings = settings.Normalized()
	s := &Service{
		settings: settings,
		store:    store,
		checker:  checker,
	}

	current, ok := store.Get(settings.Variable)
	if !ok || current != settings.SymbolServer {
		// A rejected write here leaves the variable as found; the next
		// successful update rewrites it wholesale anyway.
		store.Set(settings.Variable, settings.SymbolServer)
	}
	return s
}

// UpdateApplicationPath points the dynamic segment at dir.
//
// The new value always replaces whatever dynamic segment was there
// before: after successful updates with P1..Pn the stored value is
// exactly prefix;Pn, with no trace of earlier paths. On any error the
// stored variable and the remembered application path are both exactly
// as they were before the call.
func (s *Service) UpdateApplicationPath(dir string) error {
	if !s.checker.DirExists(dir) {
		return fmt.Errorf("%w: %s", ErrNoSuchDirectory, dir)
	}

	value := model.FormatSearchPath(s.settings.SymbolServer, dir)
	if !s.store.Set(s.settings.Variable, value) {
		return fmt.Errorf("%w: %s", ErrStoreRejected, s.settings.Variable)
	}

	s.applicationPath = dir
	s.hasApplication = true
	return nil
}

// ApplicationPath returns the last successfully synchronized directory,
// and false before the first successful update.
func (s *Service) ApplicationPath() (string, bool) {
	return s.applicationPath, s.hasApplication
}

// Value returns the search-path value this service believes is stored:
// the prefix, plus the dynamic segment once one has been confirmed.
func (s *Service) Value() string {
	if !s.hasApplication {
		return s.settings.SymbolServer
	}
	return model.FormatSearchPath(s.settings.SymbolServer, s.applicationPath)
}

// Settings returns the immutable configuration the service was built with.
func (s *Service) Settings() model.Settings {
	return s.settings
}
