package env

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSStoreRoundTrip(t *testing.T) {
	t.Setenv("SYMPATH_TEST_VAR", "")
	store := &OSStore{}

	ok := store.Set("SYMPATH_TEST_VAR", "*SRV;/opt/application")
	require.True(t, ok)

	value, found := store.Get("SYMPATH_TEST_VAR")
	assert.True(t, found)
	assert.Equal(t, "*SRV;/opt/application", value)
}

func TestOSStoreRejectsOversizedValueUntouched(t *testing.T) {
	t.Setenv("SYMPATH_TEST_VAR", "*SRV;/old")
	store := &OSStore{Persist: true}

	ok := store.Set("SYMPATH_TEST_VAR", "*SRV;/"+strings.Repeat("x", 1024))

	require.False(t, ok)
	value, _ := store.Get("SYMPATH_TEST_VAR")
	assert.Equal(t, "*SRV;/old", value, "a rejected write must leave the old value standing")
}

func TestOSStoreRollsBackWhenPersistFails(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a host without setx")
	}
	t.Setenv("SYMPATH_TEST_VAR", "*SRV;/old")
	store := &OSStore{Persist: true}

	// setx does not exist here, so the persist half fails after the
	// process-local write succeeded.
	ok := store.Set("SYMPATH_TEST_VAR", "*SRV;/new")

	require.False(t, ok)
	value, _ := store.Get("SYMPATH_TEST_VAR")
	assert.Equal(t, "*SRV;/old", value, "the process-local write must be rolled back")
}

func TestOSStoreGetUnset(t *testing.T) {
	store := &OSStore{}

	_, found := store.Get("SYMPATH_TEST_VAR_THAT_DOES_NOT_EXIST")

	assert.False(t, found)
}

func TestOSCheckerDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	checker := OSChecker{}

	assert.True(t, checker.DirExists(dir))
	assert.False(t, checker.DirExists(file))
	assert.False(t, checker.DirExists(filepath.Join(dir, "missing")))
}
