package standard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewStandardHTTPClient(t *testing.T) {
	timeout := 10 * time.Second
	client := NewStandardHTTPClient(timeout)

	if client == nil {
		t.Fatal("NewStandardHTTPClient returned nil")
	}
	if client.client.Timeout != timeout {
		t.Errorf("Client timeout = %v, want %v", client.client.Timeout, timeout)
	}
	if client.maxAttempts != DefaultMaxAttempts {
		t.Errorf("maxAttempts = %d, want %d", client.maxAttempts, DefaultMaxAttempts)
	}
}

func TestWithMaxAttempts_IgnoresNonPositive(t *testing.T) {
	client := NewStandardHTTPClient(time.Second, WithMaxAttempts(0))

	if client.maxAttempts != DefaultMaxAttempts {
		t.Errorf("maxAttempts = %d, want %d", client.maxAttempts, DefaultMaxAttempts)
	}
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"meals":null}`))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode(), http.StatusOK)
	}
	if resp.Header("content-type") != "application/json" {
		t.Errorf("Header(content-type) = %q", resp.Header("content-type"))
	}
	body, _ := io.ReadAll(resp.Body())
	if string(body) != `{"meals":null}` {
		t.Errorf("Body = %s", string(body))
	}
}

func TestStandardHTTPClient_Get_Headers(t *testing.T) {
	var userAgent, accept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if !strings.Contains(userAgent, "RecipeFinderAPI") {
		t.Errorf("User-Agent = %s, should contain 'RecipeFinderAPI'", userAgent)
	}
	if accept != "application/json" {
		t.Errorf("Accept = %s, want application/json", accept)
	}
}

func TestStandardHTTPClient_Get_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10*time.Second, WithMaxAttempts(3))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.Get(ctx, server.URL)

	if err == nil {
		t.Fatal("Get should return error for a canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error should wrap context.Canceled, got: %v", err)
	}
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)

	if _, err := client.Get(context.Background(), "not a valid url"); err == nil {
		t.Error("Get should return error for invalid URL")
	}
}

func TestStandardHTTPClient_Get_SingleAttemptByDefault(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("Attempts = %d, want 1", got)
	}
	if resp.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", resp.StatusCode())
	}
}

func TestStandardHTTPClient_Get_Retry503(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10*time.Second, WithMaxAttempts(3))
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("Attempts = %d, want 3", got)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode(), http.StatusOK)
	}
}

func TestStandardHTTPClient_Get_NoRetryOn4xx(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10*time.Second, WithMaxAttempts(3))
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("Attempts = %d, want 1 (no retry on 4xx)", got)
	}
}

func TestHTTPResponse_Header(t *testing.T) {
	resp := &httpResponse{
		headers: http.Header{
			"Content-Type": []string{"application/json"},
		},
	}

	if resp.Header("Content-Type") != "application/json" {
		t.Errorf("Header(Content-Type) = %s, want application/json", resp.Header("Content-Type"))
	}
	if resp.Header("Non-Existent") != "" {
		t.Errorf("Header(Non-Existent) = %s, want empty string", resp.Header("Non-Existent"))
	}
}
