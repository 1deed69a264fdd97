package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// healthServer serves a canned health response and returns its host:port.
func healthServer(t *testing.T, status int, body string) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return strings.TrimPrefix(srv.URL, "http://")
}

func TestCheckHealth(t *testing.T) {
	addr := healthServer(t, http.StatusOK, `{"status":"ok","time":"2026-03-09T14:30:05Z"}`)
	assert.NoError(t, checkHealth(addr))
}

func TestCheckHealth_ErrorStatusCode(t *testing.T) {
	addr := healthServer(t, http.StatusServiceUnavailable, `{"error":"internal server error"}`)
	assert.Error(t, checkHealth(addr))
}

func TestCheckHealth_UnhealthyPayload(t *testing.T) {
	addr := healthServer(t, http.StatusOK, `{"status":"degraded"}`)

	err := checkHealth(addr)
	require.Error(t, err, "a 200 with a non-ok status must fail the healthcheck")
	assert.Contains(t, err.Error(), "degraded")
}

func TestCheckHealth_MalformedPayload(t *testing.T) {
	addr := healthServer(t, http.StatusOK, `not json`)
	assert.Error(t, checkHealth(addr))
}

func TestNormalizeAddr(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty defaults", in: "", want: "127.0.0.1:8080"},
		{name: "bind-all host becomes loopback", in: "0.0.0.0:9090", want: "127.0.0.1:9090"},
		{name: "empty host becomes loopback", in: ":8081", want: "127.0.0.1:8081"},
		{name: "explicit host kept", in: "10.1.2.3:8080", want: "10.1.2.3:8080"},
		{name: "unparseable defaults", in: "not-an-addr", want: "127.0.0.1:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeAddr(tt.in))
		})
	}
}
