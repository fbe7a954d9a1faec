// Package importer pre-fills job-posting forms from public job pages.
package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/jobboard/internal/logging"
)

// DefaultTimeout is the default page fetch timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for page requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; jobboard/1.0)"

// maxPageBytes caps how much of a page is read.
const maxPageBytes = 5 << 20

// Options configures page fetching.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	// Render loads the page in headless Chrome so script-built postings
	// are visible.
	Render bool
	Logger *zap.Logger
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Page is a fetched job page.
type Page struct {
	URL        string
	HTML       string
	StatusCode int
}

// Fetch retrieves the HTML of a job page. A nil opts uses DefaultOptions.
func Fetch(ctx context.Context, pageURL string, opts *Options) (*Page, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &Error{URL: pageURL, Message: "invalid URL", Cause: err}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log := logging.OrNop(opts.Logger)

	if opts.Render {
		html, err := render(ctx, pageURL, timeout, log)
		if err != nil {
			return nil, &Error{URL: pageURL, Message: "browser rendering failed", Cause: err}
		}
		return &Page{URL: pageURL, HTML: html, StatusCode: http.StatusOK}, nil
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "failed to read response body", Cause: err}
	}
	log.Debug("fetched job page",
		zap.String("url", pageURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)),
	)

	page := &Page{URL: pageURL, HTML: string(body), StatusCode: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		return page, &Error{URL: pageURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return page, nil
}

// Import fetches a job page and extracts the posting on it.
func Import(ctx context.Context, pageURL string, opts *Options) (*Posting, error) {
	page, err := Fetch(ctx, pageURL, opts)
	if err != nil {
		return nil, err
	}
	return Extract(page.HTML, page.URL)
}
