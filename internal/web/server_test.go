package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sympath/internal/sympath"
	"sympath/internal/watch"
)

type fakeSource struct {
	event watch.Event
	ok    bool
}

func (f *fakeSource) Latest() (watch.Event, bool) {
	return f.event, f.ok
}

func syncedEvent() watch.Event {
	return watch.Event{
		Kind: watch.EventSynced,
		Path: "/opt/application/application",
		Dir:  "/opt/application",
		At:   time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		Report: sympath.Report{
			Variable:        "_NT_SYMBOL_PATH",
			SymbolServer:    "*SRV",
			StoredValue:     "*SRV;/opt/application",
			ApplicationPath: "/opt/application",
			HasApplication:  true,
		},
	}
}

func TestStateEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	handleState(&fakeSource{event: syncedEvent(), ok: true})(rec, httptest.NewRequest("GET", "/api/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "synced", body["LastEvent"])
	assert.Equal(t, "*SRV;/opt/application", body["StoredValue"])
	assert.NotEmpty(t, body["Version"])
}

func TestStateEndpointBeforeFirstPoll(t *testing.T) {
	rec := httptest.NewRecorder()
	handleState(&fakeSource{})(rec, httptest.NewRequest("GET", "/api/state", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReportEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	handleReport(&fakeSource{event: syncedEvent(), ok: true})(rec, httptest.NewRequest("GET", "/api/report?verbose=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "_NT_SYMBOL_PATH")
	assert.Contains(t, rec.Body.String(), "/opt/application")
	assert.Contains(t, rec.Body.String(), "Raw value:")
}

func TestIndexPage(t *testing.T) {
	rec := httptest.NewRecorder()
	handleIndex(rec, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sympath")

	rec = httptest.NewRecorder()
	handleIndex(rec, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
