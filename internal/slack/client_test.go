package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchrelay/internal/config"
	"matchrelay/internal/types"
)

func testSlackConfig() config.SlackConfig {
	return config.SlackConfig{
		Host:      "https://hooks.slack.com",
		ProdPath:  "/services/T0/B0/prod",
		TestPath:  "/services/T0/B0/test",
		Timeout:   2 * time.Second,
		UserAgent: "matchrelay-test/1.0",
	}
}

func TestDestinations_For(t *testing.T) {
	d := NewDestinations(testSlackConfig())

	assert.Equal(t, "https://hooks.slack.com/services/T0/B0/prod", d.For(types.EnvProduction))
	assert.Equal(t, "https://hooks.slack.com/services/T0/B0/test", d.For(types.EnvTest))
}

func TestDestinations_UnknownEnvironmentGoesToTest(t *testing.T) {
	d := NewDestinations(testSlackConfig())
	assert.Equal(t, d.For(types.EnvTest), d.For(types.Environment("staging")))
}

func TestDestinations_PathNormalization(t *testing.T) {
	cfg := testSlackConfig()
	cfg.Host = "https://hooks.slack.com/"
	cfg.ProdPath = "services/T0/B0/prod"
	d := NewDestinations(cfg)

	assert.Equal(t, "https://hooks.slack.com/services/T0/B0/prod", d.For(types.EnvProduction))
}

func TestClient_Post(t *testing.T) {
	var gotBody payload
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(testSlackConfig(), nil)

	res, err := c.Post(context.Background(), srv.URL, "Ping: hi")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", res.Body)
	assert.Equal(t, "Ping: hi", gotBody.Text)
	assert.Equal(t, "matchrelay-test/1.0", gotUA)
}

func TestClient_PostPassesThroughSlackErrors(t *testing.T) {
	// A Slack-side error is a completed delivery attempt; the status and
	// body are reported, not converted into a client error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no_service"))
	}))
	defer srv.Close()

	c := NewClient(testSlackConfig(), nil)

	res, err := c.Post(context.Background(), srv.URL, "hello")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "no_service", res.Body)
}

func TestClient_PostTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(testSlackConfig(), nil)

	_, err := c.Post(context.Background(), srv.URL, "hello")
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeUpstreamSlack, appErr.Code)
}
