package scraper

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"

	"github.com/kapu/kokkai-giin-go/pkg/errors"
)

func TestHTTPFetcherDecodesShiftJIS(t *testing.T) {
	encoded, err := japanese.ShiftJIS.NewEncoder().String("<html><body><h2>衆議院議員一覧</h2></body></html>")
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=Shift_JIS")
		_, _ = w.Write([]byte(encoded))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(FetcherConfig{UserAgent: "giin-test/1.0"}, nil)
	markup, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(markup, "衆議院議員一覧") {
		t.Fatalf("expected decoded markup, got %q", markup)
	}
	if userAgent != "giin-test/1.0" {
		t.Fatalf("expected configured user agent, got %q", userAgent)
	}
}

func TestHTTPFetcherUsesMetaCharset(t *testing.T) {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(
		`<html><head><meta http-equiv="Content-Type" content="text/html; charset=Shift_JIS"></head><body>参議院</body></html>`)
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(encoded))
	}))
	defer server.Close()

	markup, err := NewHTTPFetcher(FetcherConfig{}, nil).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(markup, "参議院") {
		t.Fatalf("expected meta charset to be honoured, got %q", markup)
	}
}

func TestHTTPFetcherRejectsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(FetcherConfig{}, nil).Fetch(context.Background(), server.URL+"/missing.htm")
	if err == nil {
		t.Fatalf("expected fetch error")
	}
	var fetchErr *errors.FetchError
	if !stderrors.As(err, &fetchErr) || fetchErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 on error, got %v", err)
	}
}

func TestHTTPFetcherUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPFetcher(FetcherConfig{}, nil).Fetch(context.Background(), url)
	var fetchErr *errors.FetchError
	if !stderrors.As(err, &fetchErr) || fetchErr.StatusCode != 0 {
		t.Fatalf("expected a transport FetchError for a closed server, got %v", err)
	}
}
