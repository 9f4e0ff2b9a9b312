package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProbeVersionSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"webSocketDebuggerUrl":"ws://127.0.0.1:1234/devtools/browser/abc"}`))
	}))
	defer srv.Close()

	host, portStr := splitHostPort(t, srv.URL)
	port, err := strconv.Atoi(portStr)
	assert.NoError(t, err)

	ws, ok := probeVersion(context.Background(), host, port)
	assert.True(t, ok)
	assert.Equal(t, "ws://127.0.0.1:1234/devtools/browser/abc", ws)
}

func TestProbeVersionFailsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	host, portStr := splitHostPort(t, srv.URL)
	port, err := strconv.Atoi(portStr)
	assert.NoError(t, err)

	_, ok := probeVersion(context.Background(), host, port)
	assert.False(t, ok)
}

func TestProbeVersionFailsOnMissingWSURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	host, portStr := splitHostPort(t, srv.URL)
	port, err := strconv.Atoi(portStr)
	assert.NoError(t, err)

	_, ok := probeVersion(context.Background(), host, port)
	assert.False(t, ok)
}

func TestProbeVersionFailsWhenNothingListening(t *testing.T) {
	_, ok := probeVersion(context.Background(), "127.0.0.1", 1)
	assert.False(t, ok)
}

func TestPollForWSGivesUpAtDeadline(t *testing.T) {
	start := time.Now()
	_, err := pollForWS(context.Background(), "127.0.0.1", 1, 150*time.Millisecond, 50*time.Millisecond)
	assert.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func splitHostPort(t *testing.T, rawURL string) (string, string) {
	t.Helper()
	// http.httptest.Server URLs are always http://127.0.0.1:PORT.
	const prefix = "http://"
	trimmed := rawURL[len(prefix):]
	for i := len(trimmed) - 1; i >= 0; i-- {
		if trimmed[i] == ':' {
			return trimmed[:i], trimmed[i+1:]
		}
	}
	t.Fatalf("no port in test server URL %q", rawURL)
	return "", ""
}
