// Package resilience holds fault tolerance building blocks for outbound
// calls: circuit breakers and retry with backoff. External content sources
// (Medium RSS, Substack pages, article pages fetched for excerpts) fail in
// bursts, and these wrappers keep a flaky source from degrading every
// listing request.
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig())
//	items, err := cb.Execute(func() (interface{}, error) {
//	    return fetcher.Fetch(ctx)
//	})
//
//	err := retry.WithBackoff(ctx, retry.FeedFetchConfig(), func() error {
//	    return fetchOnce(ctx)
//	})
package resilience
