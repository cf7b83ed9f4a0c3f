package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recipebox/internal/config"
	"recipebox/internal/logging"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppPort: ":0",
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    filepath.Join(t.TempDir(), "recipebox.db"),
		},
		Session: config.SessionConfig{
			Secret: "test_jwt_secret",
			TTL:    time.Hour,
		},
		CORSOrigins: []string{"http://localhost:3000"},
	}
}

func TestBuildAppHealthCheck(t *testing.T) {
	logging.Init(logging.Config{Level: "disabled", Output: io.Discard})

	app, cleanup, err := buildApp(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"healthy"`)

	// Unauthenticated Access
	req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBuildAppRejectsBadRedisURL(t *testing.T) {
	logging.Init(logging.Config{Level: "disabled", Output: io.Discard})

	cfg := testConfig(t)
	cfg.RedisURL = "not-a-url"
	_, cleanup, err := buildApp(cfg)
	cleanup()
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}

func TestLogNotificationEvent(t *testing.T) {
	logging.Init(logging.Config{Level: "disabled", Output: io.Discard})

	assert.NoError(t, logNotificationEvent(amqpDelivery(`{"notification_id":1,"type":"like","recipient_id":2,"actor_id":3}`)))
	assert.Error(t, logNotificationEvent(amqpDelivery(`not json`)))
}

func amqpDelivery(body string) amqp.Delivery {
	return amqp.Delivery{Body: []byte(body)}
}
