package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultUserAgent is the browser-like User-Agent sent with every
// request. pixiv serves error pages to clients it does not recognize.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

// Client wraps HTTP operations with pixiv-specific configuration.
//
// Client provides:
//   - Browser-like User-Agent and ajax headers
//   - PHPSESSID session cookie injection (required for restricted content)
//   - Per-request Referer, which i.pximg.net requires for image bodies
//   - Atomic file downloads (temp file + rename)
//
// Example usage:
//
//	client := NewClient(sessionID)
//
//	// Fetch an ajax endpoint
//	body, err := client.Get(ctx, apiURL, refererURL)
//
//	// Download an image with progress
//	err = client.DownloadFile(ctx, imageURL, refererURL, "/art/01.png", func(written, total int64) {
//	    fmt.Printf("%d / %d bytes\n", written, total)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
	sessionID  string
}

// NewClient creates a new HTTP client configured for pixiv.
//
// sessionID is the PHPSESSID cookie value of a logged-in browser
// session; pass "" to browse anonymously (restricted content will fail).
//
// The client is configured with a 60 second timeout.
func NewClient(sessionID string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: DefaultUserAgent,
		sessionID: sessionID,
	}
}

// SetUserAgent overrides the User-Agent header sent with requests.
// An empty string is ignored.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

func (c *Client) newRequest(ctx context.Context, url, referer string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	if c.sessionID != "" {
		req.Header.Set("Cookie", "PHPSESSID="+c.sessionID)
	}

	return req, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// The request carries the configured User-Agent, session cookie, and
// the given Referer (pass "" to omit it).
//
// Returns an error if the request fails, the response status is not
// 200 OK, or reading the body fails.
func (c *Client) Get(ctx context.Context, url, referer string) ([]byte, error) {
	req, err := c.newRequest(ctx, url, referer)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content like HTML.
func (c *Client) GetString(ctx context.Context, url, referer string) (string, error) {
	body, err := c.Get(ctx, url, referer)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadFile downloads a file to the specified path with optional
// progress callback.
//
// The body is streamed into "<destPath>.part" and the temp file is
// renamed onto destPath only after the full body has been written, so a
// failed or cancelled download never leaves a truncated file at
// destPath. On error the temp file is removed.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - referer: Referer header value (i.pximg.net rejects requests without one)
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes);
//     pass nil to disable progress tracking
func (c *Client) DownloadFile(ctx context.Context, url, referer, destPath string, onProgress func(written, total int64)) error {
	req, err := c.newRequest(ctx, url, referer)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	tmpPath := destPath + ".part"
	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	if _, err = io.Copy(writer, resp.Body); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, destPath)
}
