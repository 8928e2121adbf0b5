// Package httputil downloads remote card images.
//
// [Fetcher] issues GET requests with a per-request timeout, a response size
// limit and [Retry] for transient failures:
//
//   - network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Delays double after each attempt (1s, 2s with the defaults).
//
//	f := httputil.NewFetcher()
//	body, contentType, err := f.Get(ctx, "https://example.com/world.png")
package httputil
