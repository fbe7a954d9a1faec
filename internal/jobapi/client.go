// Package jobapi is the HTTP client of the external job listing and
// document upload services.
package jobapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "jobboard/1.0"

// UploadField is the multipart field carrying an uploaded document.
const UploadField = "file"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to the job service rooted at a base URL.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	headers   map[string]string
	log       *zap.Logger
}

// NewClient validates baseURL and builds a client. A nil opts uses
// DefaultOptions.
func NewClient(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: baseURL, Message: "invalid base URL", Cause: err}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		userAgent: userAgent,
		headers:   opts.Headers,
		log:       logging.OrNop(opts.Logger),
	}, nil
}

// BaseURL returns the service root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListJobs fetches every job posting.
func (c *Client) ListJobs(ctx context.Context) ([]types.JobRecord, error) {
	endpoint := c.baseURL + "/jobs"
	body, err := c.do(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}

	var jobs []types.JobRecord
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to decode job list", Cause: err}
	}
	return jobs, nil
}

// CreateJob posts a record. The record is sent as is; callers validate it first.
func (c *Client) CreateJob(ctx context.Context, rec types.JobRecord) (types.CreatedJob, error) {
	endpoint := c.baseURL + "/jobs"
	payload, err := json.Marshal(rec)
	if err != nil {
		return types.CreatedJob{}, &Error{URL: endpoint, Message: "failed to encode job", Cause: err}
	}

	body, err := c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), "application/json")
	if err != nil {
		return types.CreatedJob{}, err
	}
	return types.ParseCreatedJob(body), nil
}

// UploadDocument sends content as a multipart upload named filename.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (types.UploadDescriptor, error) {
	endpoint := c.baseURL + "/upload/"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := writeFilePart(mw, filename, content); err != nil {
		return types.UploadDescriptor{}, &Error{URL: endpoint, Message: "failed to build upload body", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return types.UploadDescriptor{}, &Error{URL: endpoint, Message: "failed to build upload body", Cause: err}
	}

	body, err := c.do(ctx, http.MethodPost, endpoint, &buf, mw.FormDataContentType())
	if err != nil {
		return types.UploadDescriptor{}, err
	}

	var desc types.UploadDescriptor
	if err := json.Unmarshal(body, &desc); err != nil {
		return types.UploadDescriptor{}, &Error{URL: endpoint, Message: "failed to decode upload response", Cause: err}
	}
	return desc, nil
}

func writeFilePart(mw *multipart.Writer, filename string, content io.Reader) error {
	name := filepath.Base(filename)
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, UploadField, name))
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, content)
	return err
}

// do executes a request and returns the body of a 2xx response. Other
// statuses become *StatusError carrying the body verbatim.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to read response body", Cause: err}
	}

	c.log.Debug("job service call",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: endpoint, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
