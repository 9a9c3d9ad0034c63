package proc

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProcEntry lays out one process under a fake /proc root.
func writeProcEntry(t *testing.T, root string, pid int, comm, exe string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("procfs fixture needs symlinks")
	}
	dir := filepath.Join(root, strconv.Itoa(pid))
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comm"), []byte(comm+"\n"), 0644))
	if exe != "" {
		require.NoError(t, os.Symlink(exe, filepath.Join(dir, "exe")))
	}
}

func TestProcfsList(t *testing.T) {
	root := t.TempDir()
	writeProcEntry(t, root, 1, "systemd", "/usr/lib/systemd/systemd")
	writeProcEntry(t, root, 42, "application", "/opt/application/bin/application")
	// Non-numeric entries like /proc/self must be skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "self"), 0755))
	// A numeric dir without comm simulates a process that vanished mid-scan.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "99"), 0755))

	p := &procfsPlatform{root: root}
	entries, err := p.List()

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries, entry{PID: 1, Name: "systemd"})
	assert.Contains(t, entries, entry{PID: 42, Name: "application"})
}

func TestProcfsListMissingRoot(t *testing.T) {
	p := &procfsPlatform{root: filepath.Join(t.TempDir(), "nope")}

	_, err := p.List()

	assert.Error(t, err)
}

func TestProcfsExecutablePath(t *testing.T) {
	root := t.TempDir()
	writeProcEntry(t, root, 42, "application", "/opt/application/bin/application")
	writeProcEntry(t, root, 7, "kthread", "")

	p := &procfsPlatform{root: root}

	path, err := p.ExecutablePath(42)
	require.NoError(t, err)
	assert.Equal(t, "/opt/application/bin/application", path)

	_, err = p.ExecutablePath(7)
	assert.Error(t, err, "a process without an exe link yields an error, not a panic")

	_, err = p.ExecutablePath(12345)
	assert.Error(t, err)
}

func TestDetectPlatform(t *testing.T) {
	p := DetectPlatform()

	require.NotNil(t, p)
	switch runtime.GOOS {
	case "linux":
		assert.Equal(t, "procfs", p.Name())
	case "windows":
		assert.Equal(t, "tasklist", p.Name())
	default:
		assert.Equal(t, "ps", p.Name())
	}
}

func TestAlive(t *testing.T) {
	assert.True(t, alive(os.Getpid()))
	assert.False(t, alive(0))
	assert.False(t, alive(-1))
}
