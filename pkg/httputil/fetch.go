package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/joinpreview/pkg/buildinfo"
	"github.com/matzehuels/joinpreview/pkg/errors"
	"github.com/matzehuels/joinpreview/pkg/observability"
)

// Fetch defaults.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultAttempts = 3
	DefaultBackoff  = time.Second
	DefaultMaxBytes = 20 << 20
)

// Fetcher downloads resources over HTTP.
type Fetcher struct {
	Client   *http.Client
	Timeout  time.Duration // per attempt
	Attempts int
	Backoff  time.Duration
	MaxBytes int64
}

// NewFetcher returns a Fetcher with the default limits.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:   http.DefaultClient,
		Timeout:  DefaultTimeout,
		Attempts: DefaultAttempts,
		Backoff:  DefaultBackoff,
		MaxBytes: DefaultMaxBytes,
	}
}

// Get downloads url and returns its body and Content-Type.
//
// Errors carry NETWORK_ERROR, TIMEOUT or NOT_FOUND codes.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, string, error) {
	var body []byte
	var contentType string

	err := Retry(ctx, f.Attempts, f.Backoff, func() error {
		var err error
		body, contentType, err = f.get(ctx, url)
		return err
	})
	if err == nil {
		return body, contentType, nil
	}

	switch {
	case errors.GetCode(err) != "":
		return nil, "", err
	case ctx.Err() != nil:
		return nil, "", errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "fetch %s", url)
	case isTimeout(err):
		return nil, "", errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", url)
	default:
		return nil, "", errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, string, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidURL, err, "invalid url %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("Accept", "image/*")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, "", Retryable(err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", errors.New(errors.ErrCodeNotFound, "%s: 404 not found", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, "", Retryable(fmt.Errorf("%s: %s", url, resp.Status))
	case resp.StatusCode >= 400:
		return nil, "", errors.New(errors.ErrCodeNetwork, "%s: %s", url, resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", Retryable(err)
	}
	if int64(len(body)) > limit {
		return nil, "", errors.New(errors.ErrCodeInvalidImage, "%s: response larger than %d bytes", url, limit)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
