// Package http provides an HTTP client configured for pixiv requests.
//
// The Client in this package handles:
//   - Browser-like User-Agent and ajax headers
//   - PHPSESSID session cookie injection
//   - Per-request Referer headers (required by the image CDN)
//   - Atomic file downloads via temp file + rename
//
// # Basic Usage
//
//	client := http.NewClient(sessionID)
//
//	// Fetch an ajax endpoint or HTML page
//	body, err := client.Get(ctx, url, referer)
//
//	// Download an image with progress callback
//	client.DownloadFile(ctx, imageURL, referer, "/art/01.png", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
