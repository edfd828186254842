package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoSetsJSONHeaders(t *testing.T) {
	var gotAccept, gotCharset, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotCharset = r.Header.Get("Accept-Charset")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	t.Run("GET", func(t *testing.T) {
		status, _, err := client.Get(context.Background(), "/projects/42")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if gotAccept != "application/json" {
			t.Errorf("Accept = %q", gotAccept)
		}
		if gotCharset != "utf-8" {
			t.Errorf("Accept-Charset = %q", gotCharset)
		}
		if gotContentType != "" {
			t.Errorf("GET must not send Content-Type, got %q", gotContentType)
		}
	})

	t.Run("POST", func(t *testing.T) {
		status, _, err := client.Post(context.Background(), "/data_sets/append", []byte(`{}`))
		if err != nil {
			t.Fatalf("Post failed: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if gotContentType != "application/json" {
			t.Errorf("Content-Type = %q", gotContentType)
		}
	})
}

func TestDoReturnsStatusAsData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no such project"}`))
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	status, body, err := client.Get(context.Background(), "/projects/0")
	if err != nil {
		t.Fatalf("a completed 404 is not a transport error, got %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}

	apiErr := NewAPIError(status, body)
	if apiErr.Message != "no such project" {
		t.Errorf("message = %q, want no such project", apiErr.Message)
	}
	if !IsNotFoundError(apiErr) {
		t.Error("IsNotFoundError should match")
	}
	if IsUnauthorized(apiErr) || IsUnprocessable(apiErr) {
		t.Error("mismatched status helpers matched")
	}
}

func TestDoTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewTestClient(t, server.URL)

	status, _, err := client.Get(context.Background(), "/projects/42")
	if err == nil {
		t.Fatal("expected transport failure")
	}
	if status != StatusTransportFailed {
		t.Errorf("status = %d, want StatusTransportFailed", status)
	}
}

func TestDoHonorsContext(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	status, _, err := client.Get(ctx, "/projects/42")
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if status != StatusTransportFailed {
		t.Errorf("status = %d, want StatusTransportFailed", status)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ISENSE_BASE_URL", "")
	t.Setenv("ISENSE_HTTP_TIMEOUT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ISENSE_BASE_URL", "http://localhost:3000/api/v1")
	t.Setenv("ISENSE_HTTP_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BaseURL != "http://localhost:3000/api/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}
