package proc

// Directory finds running processes by image name. It holds no state
// beyond the platform strategy chosen at construction; every query reads
// the live process table.
type Directory struct {
	p platform
}

// NewDirectory builds a Directory for the current OS.
func NewDirectory() *Directory {
	return &Directory{p: DetectPlatform()}
}

// FindByName returns a handle for every running process whose image name
// matches name under the OS-default comparison. An empty name returns
// nothing; that is an explicit contract, not a match-everything wildcard.
// Enumeration faults degrade to an empty result; discovery callers retry
// on their next poll anyway.
func (d *Directory) FindByName(name string) []*Process {
	if name == "" {
		return nil
	}
	entries, err := d.p.List()
	if err != nil {
		return nil
	}

	var matches []*Process
	for _, e := range entries {
		if d.p.MatchName(e.Name, name) {
			matches = append(matches, handleFor(e.PID))
		}
	}
	return matches
}

// PathOf resolves the executable path of any running process matching
// name. The second return is false when no match exists or the OS
// refuses to disclose the path (permissions, kernel threads); either
// way the fault stops here.
func (d *Directory) PathOf(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	entries, err := d.p.List()
	if err != nil {
		return "", false
	}

	for _, e := range entries {
		if !d.p.MatchName(e.Name, name) {
			continue
		}
		path, err := d.p.ExecutablePath(e.PID)
		if err != nil {
			// This match is unreadable; another match may not be.
			continue
		}
		return path, true
	}
	return "", false
}
