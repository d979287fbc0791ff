// Package fetchhttp provides the HTTP client used for tile downloads.
//
// This package handles:
//   - Connection pooling sized for many small parallel requests
//   - A fixed per-request timeout (default 30s)
//   - Mapping response status codes to sentinel errors
//   - Optional insecure TLS for the public tile endpoint
//
// There is deliberately no retry logic: a failed tile is recorded by the
// fetch engine and re-requested only by a later run.
//
// # Usage
//
//	client := fetchhttp.NewClient(fetchhttp.Options{
//	    Timeout:            30 * time.Second,
//	    InsecureSkipVerify: true,
//	})
//
//	body, err := client.Get(ctx, url)
//	defer body.Close()
package fetchhttp
