package article

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"stocksnip/internal/domain"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetcherFetchReturnsDocument(t *testing.T) {
	var gotUserAgent atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent.Store(r.UserAgent())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>hello</p></body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), time.Second, 0, slog.Default())

	doc, err := f.Fetch(context.Background(), srv.URL+"/news/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.HTML != "<html><body><p>hello</p></body></html>" {
		t.Fatalf("unexpected HTML: %q", doc.HTML)
	}
	if doc.URL != srv.URL+"/news/1" {
		t.Fatalf("unexpected URL: %q", doc.URL)
	}
	if doc.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", doc.StatusCode)
	}
	if !strings.HasPrefix(doc.ContentType, "text/html") {
		t.Fatalf("unexpected content type: %q", doc.ContentType)
	}
	if ua, _ := gotUserAgent.Load().(string); ua != userAgent {
		t.Fatalf("unexpected user agent: %q", ua)
	}
}

func TestFetcherFetchTimesOut(t *testing.T) {
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	timeout := 100 * time.Millisecond
	f := NewFetcher(srv.Client(), timeout, 0, slog.Default())

	start := time.Now()
	_, err := f.Fetch(context.Background(), srv.URL)
	elapsed := time.Since(start)

	if !errors.Is(err, domain.ErrFetchTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected timeout to be distinct from network error, got %v", err)
	}
	if elapsed > timeout+2*time.Second {
		t.Fatalf("fetch took too long to time out: %s", elapsed)
	}
}

func TestFetcherFetchTimeoutDoesNotCancelParent(t *testing.T) {
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	f := NewFetcher(srv.Client(), 50*time.Millisecond, 0, slog.Default())

	ctx := context.Background()
	if _, err := f.Fetch(ctx, srv.URL); !errors.Is(err, domain.ErrFetchTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}

	if ctx.Err() != nil {
		t.Fatalf("expected parent context to stay alive, got %v", ctx.Err())
	}
}

func TestFetcherFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	unreachableURL := srv.URL
	srv.Close()

	f := NewFetcher(nil, time.Second, 0, slog.Default())

	_, err := f.Fetch(context.Background(), unreachableURL)
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if errors.Is(err, domain.ErrFetchTimeout) {
		t.Fatalf("expected network error to be distinct from timeout, got %v", err)
	}
}

func TestFetcherFetchUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), time.Second, 0, slog.Default())

	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "unexpected status: 404") {
		t.Fatalf("expected unexpected status error, got %v", err)
	}
}

func TestFetcherFetchBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), time.Second, 16, slog.Default())

	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for oversized body")
	}
}

func TestFetcherFetchRejectsInvalidURL(t *testing.T) {
	var hits atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), time.Second, 0, slog.Default())

	for _, raw := range []string{"", "not a url", "ftp://example.com/file", "/relative/path"} {
		if _, err := f.Fetch(context.Background(), raw); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}

	if got := hits.Load(); got != 0 {
		t.Fatalf("expected no outbound requests, got %d", got)
	}
}

func TestNewFetcherDefaults(t *testing.T) {
	f := NewFetcher(nil, 0, 0, slog.Default())

	if f.timeout != DefaultFetchTimeout {
		t.Fatalf("unexpected default timeout: %s", f.timeout)
	}
	if f.maxBodyBytes != DefaultFetchMaxBodyBytes {
		t.Fatalf("unexpected default body limit: %d", f.maxBodyBytes)
	}
	if f.client == nil {
		t.Fatalf("expected default HTTP client")
	}
}
