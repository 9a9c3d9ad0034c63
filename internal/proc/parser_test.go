package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePID(t *testing.T) {
	assert.Equal(t, 1234, parsePID("1234"))
	assert.Equal(t, 0, parsePID("self"))
	assert.Equal(t, 0, parsePID("sys"))
	assert.Equal(t, 0, parsePID("-5"))
	assert.Equal(t, 0, parsePID(""))
}

func TestParsePSOutput(t *testing.T) {
	out := "    1 /sbin/launchd\n" +
		"  501 /Applications/My App.app/Contents/MacOS/My App\n" +
		"\n" +
		"garbage line\n" +
		" 9999 bash\n"

	entries := parsePSOutput(out)

	require.Len(t, entries, 3)
	assert.Equal(t, entry{PID: 1, Name: "launchd"}, entries[0])
	assert.Equal(t, entry{PID: 501, Name: "My App"}, entries[1], "embedded spaces in the command survive")
	assert.Equal(t, entry{PID: 9999, Name: "bash"}, entries[2])
}

func TestParseTasklistCSV(t *testing.T) {
	out := `"System Idle Process","0","Services","0","8 K"` + "\r\n" +
		`"notepad.exe","4216","Console","1","15,112 K"` + "\r\n" +
		`"application.exe","512","Console","1","40,196 K"` + "\r\n"

	entries := parseTasklistCSV(out)

	require.Len(t, entries, 2, "pid 0 rows are dropped")
	assert.Equal(t, entry{PID: 4216, Name: "notepad.exe"}, entries[0])
	assert.Equal(t, entry{PID: 512, Name: "application.exe"}, entries[1])
}

func TestParseTasklistCSVCommaInImageName(t *testing.T) {
	out := `"My App, Ltd.exe","777","Console","1","12,340 K"` + "\r\n"

	entries := parseTasklistCSV(out)

	require.Len(t, entries, 1)
	assert.Equal(t, entry{PID: 777, Name: "My App, Ltd.exe"}, entries[0],
		"a comma inside the image name must not shift the pid column")
}

func TestMatchExact(t *testing.T) {
	assert.True(t, matchExact("bash", "bash"))
	assert.True(t, matchExact("bash", "/usr/bin/bash"), "full-path queries match on base name")
	assert.False(t, matchExact("bash", "Bash"), "Unix comparison is case-sensitive")
	assert.False(t, matchExact("bash", "sh"))
}

func TestWindowsMatchName(t *testing.T) {
	p := &windowsPlatform{}

	assert.True(t, p.MatchName("Application.exe", "application.exe"))
	assert.True(t, p.MatchName("Application.exe", "application"), "the .exe suffix is optional")
	assert.False(t, p.MatchName("Application.exe", "app"))
}
