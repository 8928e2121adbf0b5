package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/joinpreview/pkg/errors"
)

func testFetcher() *Fetcher {
	f := NewFetcher()
	f.Backoff = time.Millisecond
	return f
}

func TestFetcher_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("missing User-Agent")
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("pixels"))
	}))
	defer srv.Close()

	body, ct, err := testFetcher().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "pixels" || ct != "image/png" {
		t.Errorf("Get = %q, %q", body, ct)
	}
}

func TestFetcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, _, err := testFetcher().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "ok" || calls.Load() != 3 {
		t.Errorf("body = %q after %d calls", body, calls.Load())
	}
}

func TestFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   errors.Code
	}{
		{"not found", http.StatusNotFound, errors.ErrCodeNotFound},
		{"forbidden", http.StatusForbidden, errors.ErrCodeNetwork},
		{"server", http.StatusInternalServerError, errors.ErrCodeNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, _, err := testFetcher().Get(context.Background(), srv.URL)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestFetcher_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 100))
	}))
	defer srv.Close()

	f := testFetcher()
	f.MaxBytes = 10
	_, _, err := f.Get(context.Background(), srv.URL)
	if !errors.Is(err, errors.ErrCodeInvalidImage) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidImage)
	}
}

func TestFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	f := testFetcher()
	f.Timeout = 20 * time.Millisecond
	f.Attempts = 1
	_, _, err := f.Get(context.Background(), srv.URL)
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeTimeout)
	}
}
