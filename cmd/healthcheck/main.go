package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"
)

// defaultAddr mirrors the service's default listen address.
const defaultAddr = "127.0.0.1:8080"

const checkTimeout = 2 * time.Second

func main() {
	addr := normalizeAddr(os.Getenv("SVCREGISTRY_LISTEN_ADDR"))
	if err := checkHealth(addr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// checkHealth fetches the health endpoint and verifies the registry reports
// itself healthy. A reachable server with a non-ok payload still fails.
func checkHealth(addr string) error {
	client := &http.Client{Timeout: checkTimeout}

	resp, err := client.Get(fmt.Sprintf("http://%s/api/v1/health", addr))
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned status %d", resp.StatusCode)
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decode health body: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("registry reports status %q", health.Status)
	}

	return nil
}

// normalizeAddr turns the service's listen address into one the healthcheck
// can dial from inside the same container: a bind-all or empty host becomes
// loopback, anything unparseable falls back to the default.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
