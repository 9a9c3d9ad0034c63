// Package proc owns one side of the core: handles on OS processes and
// discovery of running processes by image name. Every public operation
// converts OS-level faults into error or absence values at its own
// boundary; nothing in here panics across the package edge.
package proc

import (
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrLaunchFailed wraps any OS-level spawn failure from Start.
var ErrLaunchFailed = errors.New("process launch failed")

// alivePollInterval is how often Wait re-probes a process we did not
// start ourselves (no wait syscall is available for non-children).
const alivePollInterval = 200 * time.Millisecond

// Process is an exclusive handle on one OS process, either started by
// this tool or found by enumeration.
//
// Close releases the handle, and if the process is still running it
// waits for it first, so nothing is leaked on early-return paths. That
// makes Close a potentially blocking call: do not Close a handle on a
// long-running child from a latency-sensitive goroutine.
type Process struct {
	pid int

	// For children we started: done is closed by the reaper goroutine
	// once the OS has reported the exit status. exitCode is written
	// before done closes, so any read after <-done is safe unlocked.
	cmd      *exec.Cmd
	done     chan struct{}
	exitCode int
}

// Start spawns a child process and returns a handle on it. Any spawn
// failure (missing executable, permission, resource limits) comes back
// as an ErrLaunchFailed-wrapped error, never a panic.
func Start(executable string, args ...string) (*Process, error) {
	cmd := exec.Command(executable, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}

	p := &Process{
		pid:  cmd.Process.Pid,
		cmd:  cmd,
		done: make(chan struct{}),
	}

	// Reap immediately in the background. This keeps IsRunning and
	// ExitCode accurate the moment the child dies (no zombie window)
	// while Wait stays a plain blocking call for the caller.
	go func() {
		err := cmd.Wait()
		p.exitCode = 0
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				p.exitCode = exitErr.ExitCode()
			} else {
				p.exitCode = -1
			}
		}
		close(p.done)
	}()

	return p, nil
}

// handleFor wraps a pid found by enumeration. No exit code will ever be
// available for it; liveness and waiting work via polling.
func handleFor(pid int) *Process {
	return &Process{pid: pid}
}

// Pid returns the OS process identifier. Valid for the whole lifetime
// of the handle, even after the process exits.
func (p *Process) Pid() int {
	return p.pid
}

// IsRunning is a non-blocking liveness check.
func (p *Process) IsRunning() bool {
	if p.done != nil {
		select {
		case <-p.done:
			return false
		default:
			return true
		}
	}
	return alive(p.pid)
}

// ExitCode returns the OS-reported termination value and whether it is
// known yet. It is only ever known for processes this tool started;
// the OS does not expose exit codes of unrelated processes.
func (p *Process) ExitCode() (int, bool) {
	if p.done == nil {
		return 0, false
	}
	select {
	case <-p.done:
		return p.exitCode, true
	default:
		return 0, false
	}
}

// Wait blocks until the process terminates. Calling it again, or after
// the process has already exited, returns immediately. There is no
// timeout or cancellation; a caller needing responsiveness should run
// Wait on its own goroutine.
func (p *Process) Wait() {
	if p.done != nil {
		<-p.done
		return
	}
	for alive(p.pid) {
		time.Sleep(alivePollInterval)
	}
}

// Close releases the handle, waiting for the process first if it is
// still running. Safe to call more than once.
func (p *Process) Close() {
	p.Wait()
}
