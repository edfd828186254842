// Package api provides the HTTP transport for the iSENSE API.
//
// It includes a request/response client with transport-failure signaling,
// typed status errors, and configuration loading for both library use and
// live integration tests.
package api

import (
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/joeshaw/envdecode"
)

// DefaultBaseURL is the default API endpoint.
const DefaultBaseURL = "http://rsense-dev.cs.uml.edu/api/v1"

// Config holds client configuration. Defaults can be loaded via envdecode.
type Config struct {
	// BaseURL is the API endpoint. ENV: ISENSE_BASE_URL
	BaseURL string `env:"ISENSE_BASE_URL,default=http://rsense-dev.cs.uml.edu/api/v1"`

	// Timeout bounds each round trip. ENV: ISENSE_HTTP_TIMEOUT
	Timeout time.Duration `env:"ISENSE_HTTP_TIMEOUT,default=30s"`

	// HTTPClient overrides the default client; mainly for tests.
	HTTPClient *http.Client

	// Logger receives request/response diagnostics; defaults to slog.Default().
	Logger *slog.Logger
}

// LoadConfig populates a Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// TestConfig holds configuration for live integration tests.
type TestConfig struct {
	// BaseURL is the API endpoint under test.
	BaseURL string

	// ProjectID is a project the test credentials may write to.
	ProjectID string

	// ContributorKey is a per-project write credential.
	ContributorKey string

	// Email and Password identify a full user account.
	Email    string
	Password string
}

// LoadTestConfig loads live-test configuration from environment variables:
//   - ISENSE_TEST_BASE_URL: API endpoint (default: DefaultBaseURL)
//   - ISENSE_TEST_PROJECT_ID: writable project id
//   - ISENSE_TEST_CONTRIBUTOR_KEY: contributor key for that project
//   - ISENSE_TEST_EMAIL, ISENSE_TEST_PASSWORD: account credentials
func LoadTestConfig(t *testing.T) TestConfig {
	t.Helper()

	return TestConfig{
		BaseURL:        getEnvOrDefault("ISENSE_TEST_BASE_URL", DefaultBaseURL),
		ProjectID:      os.Getenv("ISENSE_TEST_PROJECT_ID"),
		ContributorKey: os.Getenv("ISENSE_TEST_CONTRIBUTOR_KEY"),
		Email:          os.Getenv("ISENSE_TEST_EMAIL"),
		Password:       os.Getenv("ISENSE_TEST_PASSWORD"),
	}
}

// RequireProject skips the test unless a writable project id is configured.
func (c TestConfig) RequireProject(t *testing.T) {
	t.Helper()

	if c.ProjectID == "" {
		t.Skip("ISENSE_TEST_PROJECT_ID not set")
	}
}

// RequireContributorKey skips the test unless a contributor key is configured.
func (c TestConfig) RequireContributorKey(t *testing.T) {
	t.Helper()

	if c.ContributorKey == "" {
		t.Skip("ISENSE_TEST_CONTRIBUTOR_KEY not set")
	}
}

// RequireAccount skips the test unless account credentials are configured.
func (c TestConfig) RequireAccount(t *testing.T) {
	t.Helper()

	if c.Email == "" {
		t.Skip("ISENSE_TEST_EMAIL not set")
	}

	if c.Password == "" {
		t.Skip("ISENSE_TEST_PASSWORD not set")
	}
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultValue
}
