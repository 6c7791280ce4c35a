package flashfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/scorepipe/scorepipe/internal/platform/resilience"
	"github.com/scorepipe/scorepipe/internal/usecase"
)

func TestFetchMatchesAgainstServer(t *testing.T) {
	var gotPath, gotSign atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		gotSign.Store(r.Header.Get("x-fsign"))
		_, _ = w.Write([]byte(matchFeedSample))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Sign: "testsign"})
	client.now = func() time.Time { return time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC) }

	day := time.Date(2026, time.March, 21, 0, 0, 0, 0, time.UTC)
	records, err := client.FetchMatches(context.Background(), day)
	if err != nil {
		t.Fatalf("FetchMatches: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if gotPath.Load() != "/x/feed/f_1_1_3_en_1" {
		t.Errorf("path = %v, want offset 1", gotPath.Load())
	}
	if gotSign.Load() != "testsign" {
		t.Errorf("sign header = %v", gotSign.Load())
	}
}

func TestFetchRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(matchFeedSample))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 2})

	records, err := client.FetchMatches(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("FetchMatches: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 3})

	if _, err := client.FetchStandings(context.Background()); err == nil {
		t.Fatal("expected error for 403")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestFetchCircuitOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := client.FetchBrackets(context.Background()); err == nil {
			t.Fatalf("call %d succeeded unexpectedly", i)
		}
	}

	_, err := client.FetchBrackets(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("err = %v, want ErrDependencyUnavailable once circuit is open", err)
	}
}
