package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipebox/internal/logging"
	"recipebox/internal/server"
	"recipebox/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, format string) (*server.App, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Format: format, Output: &buf})
	t.Cleanup(func() { logging.Init(logging.Config{Level: "disabled", Output: io.Discard}) })

	app := server.New(server.Options{
		DB:          testutil.OpenDB(t),
		JWTSecret:   "test_jwt_secret",
		SessionTTL:  time.Hour,
		CORSOrigins: []string{"http://localhost:3000"},
	})
	// Database setup logs are not part of the access log.
	buf.Reset()
	return app, &buf
}

func get(t *testing.T, app *server.App, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAccessLogJSON(t *testing.T) {
	app, buf := newApp(t, "json")

	require.Equal(t, http.StatusOK, get(t, app, "/health"))
	require.Equal(t, http.StatusNotFound, get(t, app, "/api/recipes/999"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry), lines[0])
	assert.Equal(t, "request", entry["message"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/health", entry["path"])
	assert.Equal(t, float64(200), entry["status"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry), lines[1])
	assert.Equal(t, "/api/recipes/999", entry["path"])
	assert.Equal(t, float64(404), entry["status"])
}

func TestAccessLogConsole(t *testing.T) {
	app, buf := newApp(t, "console")

	require.Equal(t, http.StatusOK, get(t, app, "/health"))

	out := buf.String()
	assert.Contains(t, out, "request")
	assert.Contains(t, out, "/health")
	assert.Contains(t, out, "200")
	assert.NotContains(t, out, "cannot decode event")
}

func TestAccessLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.Config{Level: "disabled", Output: io.Discard}) })

	app := server.New(server.Options{
		DB:            testutil.OpenDB(t),
		JWTSecret:     "test_jwt_secret",
		SessionTTL:    time.Hour,
		CORSOrigins:   []string{"http://localhost:3000"},
		DisableAccess: true,
	})
	buf.Reset()

	require.Equal(t, http.StatusOK, get(t, app, "/health"))
	assert.Empty(t, buf.String())
}
