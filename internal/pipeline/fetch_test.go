package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPFetcherFetch(t *testing.T) {
	t.Run("success carries bytes and content type", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("User-Agent"); got != DefaultUserAgent {
				t.Errorf("User-Agent = %q, want %q", got, DefaultUserAgent)
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body><p>hi</p></body></html>"))
		}))
		defer srv.Close()

		f := NewHTTPFetcher(5*time.Second, "")
		doc, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(doc.Bytes), "<p>hi</p>") {
			t.Errorf("body = %q", doc.Bytes)
		}
		if doc.ContentType != "text/html; charset=utf-8" {
			t.Errorf("content type = %q", doc.ContentType)
		}
		if doc.SourceURL == nil || doc.SourceURL.String() != srv.URL {
			t.Errorf("source URL = %v, want %s", doc.SourceURL, srv.URL)
		}
	})

	t.Run("non-2xx wraps ErrFetch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		f := NewHTTPFetcher(5*time.Second, "")
		_, err := f.Fetch(context.Background(), srv.URL)
		if !errors.Is(err, ErrFetch) {
			t.Fatalf("error = %v, want ErrFetch", err)
		}
		if !strings.Contains(err.Error(), srv.URL) {
			t.Errorf("error %q does not carry the URL", err)
		}
	})

	t.Run("unreachable host wraps ErrFetch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		f := NewHTTPFetcher(2*time.Second, "")
		_, err := f.Fetch(context.Background(), srv.URL)
		if !errors.Is(err, ErrFetch) {
			t.Fatalf("error = %v, want ErrFetch", err)
		}
	})

	t.Run("unsupported scheme rejected", func(t *testing.T) {
		f := NewHTTPFetcher(time.Second, "")
		_, err := f.Fetch(context.Background(), "ftp://example.com/page.html")
		if !errors.Is(err, ErrFetch) {
			t.Fatalf("error = %v, want ErrFetch", err)
		}
	})

	t.Run("timeout surfaces as ErrFetch not a hang", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(2 * time.Second)
		}))
		defer srv.Close()

		f := NewHTTPFetcher(50*time.Millisecond, "")
		start := time.Now()
		_, err := f.Fetch(context.Background(), srv.URL)
		if !errors.Is(err, ErrFetch) {
			t.Fatalf("error = %v, want ErrFetch", err)
		}
		if time.Since(start) > time.Second {
			t.Errorf("fetch did not respect timeout")
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(2 * time.Second)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := NewHTTPFetcher(5*time.Second, "")
		if _, err := f.Fetch(ctx, srv.URL); err == nil {
			t.Fatal("expected error from cancelled context")
		}
	})
}

func TestHTTPFetcherFetchImage(t *testing.T) {
	gif := []byte("GIF89a\x01\x00\x01\x00")

	t.Run("declared content type wins", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/gif")
			_, _ = w.Write(gif)
		}))
		defer srv.Close()

		f := NewHTTPFetcher(5*time.Second, "")
		data, mime, err := f.FetchImage(context.Background(), srv.URL+"/pic.gif")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mime != "image/gif" {
			t.Errorf("mime = %q, want image/gif", mime)
		}
		if len(data) != len(gif) {
			t.Errorf("data length = %d, want %d", len(data), len(gif))
		}
	})

	t.Run("missing content type falls back to sniffing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(gif)
		}))
		defer srv.Close()

		f := NewHTTPFetcher(5*time.Second, "")
		_, mime, err := f.FetchImage(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mime != "image/gif" {
			t.Errorf("mime = %q, want image/gif", mime)
		}
	})

	t.Run("failure wraps ErrImageFetch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer srv.Close()

		f := NewHTTPFetcher(5*time.Second, "")
		_, _, err := f.FetchImage(context.Background(), srv.URL)
		if !errors.Is(err, ErrImageFetch) {
			t.Fatalf("error = %v, want ErrImageFetch", err)
		}
	})
}
