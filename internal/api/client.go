// Package api provides the rate-limit-aware HTTP client for the
// GoHighLevel v2 API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// BaseURL is the fixed API origin.
const BaseURL = "https://services.leadconnectorhq.com"

const (
	// defaultMaxRetries is the attempt budget for 429 responses.
	defaultMaxRetries = 3
	// lowWaterMark is the remaining-quota threshold below which the client
	// proactively slows down.
	lowWaterMark = 5
	// lowWaterDelay is the proactive delay inserted near the quota limit.
	lowWaterDelay = 500 * time.Millisecond
	// retryBuffer pads the computed 429 wait.
	retryBuffer = 100 * time.Millisecond
	// requestTimeout is the fixed connect/read timeout for all calls.
	requestTimeout = 30 * time.Second
)

// Upload is a file destined for a multipart request.
type Upload struct {
	// Field is the multipart form field name.
	Field string
	// Filename is the client-reported file name.
	Filename string
	// Content is the file body.
	Content []byte
}

// RequestOptions adjusts a single request.
type RequestOptions struct {
	// Params are query parameters; empty values are stripped.
	Params map[string]string
	// Body is marshaled as the JSON request body, or written as form
	// fields when Files is set.
	Body any
	// Files switches the request to multipart encoding.
	Files []Upload
	// MaxRetries caps 429 retries; 0 means the default of 3.
	MaxRetries int
	// OmitLocation disables injecting the client's location into Params
	// (used for nested routes that carry the location in the path).
	OmitLocation bool
	// LocationParam is the query key for the location, "locationId" when
	// empty. Some endpoints expect "location_id".
	LocationParam string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API origin. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithAPIVersion overrides the Version header value.
func WithAPIVersion(v string) Option {
	return func(c *Client) { c.apiVersion = v }
}

// WithSleep overrides the sleep function used for backoff. Used by tests.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(c *Client) { c.sleep = sleep }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client issues authenticated requests against the API origin and keeps the
// caller inside the server's rate limit. A Client is meant for sequential
// use; rate limit state is per instance and never shared, so concurrent
// instances can independently overrun the server's true remaining quota.
type Client struct {
	token      string
	locationID string
	apiVersion string
	baseURL    string

	httpClient *http.Client
	rateLimit  *RateLimitInfo

	sleep func(context.Context, time.Duration) error
	now   func() time.Time
}

// New creates a Client for the given token and optional location ID.
func New(token, locationID string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		locationID: locationID,
		apiVersion: "2021-07-28",
		baseURL:    BaseURL,
		sleep:      sleepContext,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sleepContext sleeps for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// LocationID returns the location this client injects into requests.
func (c *Client) LocationID() string {
	return c.locationID
}

// RateLimitInfo returns the latest rate limit info observed on this client,
// or nil before the first response that carried rate limit headers.
func (c *Client) RateLimitInfo() *RateLimitInfo {
	if c.rateLimit == nil {
		return nil
	}
	info := *c.rateLimit
	return &info
}

// client returns the underlying HTTP client, creating it on first use.
func (c *Client) client() *http.Client {
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: requestTimeout}
	}
	return c.httpClient
}

// Close releases the persistent connections held by the client. Safe to
// call multiple times.
func (c *Client) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
	}
}

// Request makes an API request with automatic retry on rate limits.
// Transport failures (timeouts, connection resets) are not retried and
// propagate unchanged; only 429 responses consume retry attempts.
func (c *Client) Request(ctx context.Context, method, path string, opts *RequestOptions) (map[string]any, error) {
	o := opts
	if o == nil {
		o = &RequestOptions{}
	}

	params := make(map[string]string, len(o.Params)+1)
	for k, v := range o.Params {
		if v != "" {
			params[k] = v
		}
	}

	if !o.OmitLocation && c.locationID != "" {
		key := o.LocationParam
		if key == "" {
			key = "locationId"
		}
		if _, ok := params[key]; !ok {
			params[key] = c.locationID
		}
	}

	maxRetries := o.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 1; ; attempt++ {
		resp, err := c.do(ctx, method, path, params, o)
		if err != nil {
			return nil, err
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		result, retry, err := c.handleResponse(ctx, resp, body, attempt, maxRetries)
		if retry {
			continue
		}
		return result, err
	}
}

// handleResponse updates rate limit state and normalizes the response.
// retry is true when the caller should reissue the request.
func (c *Client) handleResponse(ctx context.Context, resp *http.Response, body []byte, attempt, maxRetries int) (map[string]any, bool, error) {
	// Only overwrite tracked state when the response actually carried rate
	// limit headers; some endpoints omit them entirely and the defaults
	// would clobber good data.
	if hasRateLimitHeaders(resp.Header) {
		info := parseRateLimitInfo(resp.Header)
		c.rateLimit = &info
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		if attempt >= maxRetries {
			return nil, false, &RateLimitError{Attempts: attempt}
		}
		info := c.rateLimit
		if info == nil {
			parsed := parseRateLimitInfo(resp.Header)
			info = &parsed
		}
		wait := time.Duration(info.IntervalMS) * time.Millisecond
		if info.Reset > 0 {
			untilReset := time.Duration((info.Reset - float64(c.now().UnixNano())/1e9) * float64(time.Second))
			if untilReset > wait {
				wait = untilReset
			}
		}
		if err := c.sleep(ctx, wait+retryBuffer); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	// Proactively slow down near the limit, even on success.
	if c.rateLimit != nil && c.rateLimit.Remaining < lowWaterMark {
		if err := c.sleep(ctx, lowWaterDelay); err != nil {
			return nil, false, err
		}
	}

	if resp.StatusCode >= 400 {
		return nil, false, parseAPIError(resp.StatusCode, body)
	}

	if resp.StatusCode == http.StatusNoContent {
		return map[string]any{}, false, nil
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil || result == nil {
		return map[string]any{"text": string(body)}, false, nil
	}
	return result, false, nil
}

// parseAPIError builds an APIError from a non-2xx response body. The body
// is parsed as JSON when possible, falling back to raw text.
func parseAPIError(status int, body []byte) *APIError {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil && parsed != nil {
		message, _ := parsed["message"].(string)
		if message == "" {
			message, _ = parsed["error"].(string)
		}
		if message == "" {
			message = fmt.Sprintf("%v", parsed)
		}
		return &APIError{StatusCode: status, Message: message, Body: parsed}
	}

	message := string(body)
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &APIError{StatusCode: status, Message: message}
}

// do issues a single HTTP call.
func (c *Client) do(ctx context.Context, method, path string, params map[string]string, o *RequestOptions) (*http.Response, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", path, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var bodyReader io.Reader
	contentType := "application/json"

	switch {
	case len(o.Files) > 0:
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		if fields, ok := o.Body.(map[string]any); ok {
			for k, v := range fields {
				if err := writer.WriteField(k, fmt.Sprint(v)); err != nil {
					return nil, fmt.Errorf("failed to encode form field %q: %w", k, err)
				}
			}
		}
		for _, up := range o.Files {
			part, err := writer.CreateFormFile(up.Field, up.Filename)
			if err != nil {
				return nil, fmt.Errorf("failed to encode file %q: %w", up.Filename, err)
			}
			if _, err := part.Write(up.Content); err != nil {
				return nil, fmt.Errorf("failed to encode file %q: %w", up.Filename, err)
			}
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
		}
		bodyReader = buf
		contentType = writer.FormDataContentType()
	case o.Body != nil:
		data, err := json.Marshal(o.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Version", c.apiVersion)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	return c.client().Do(req)
}

// Get makes a GET request.
func (c *Client) Get(ctx context.Context, path string, opts *RequestOptions) (map[string]any, error) {
	return c.Request(ctx, http.MethodGet, path, opts)
}

// Post makes a POST request.
func (c *Client) Post(ctx context.Context, path string, opts *RequestOptions) (map[string]any, error) {
	return c.Request(ctx, http.MethodPost, path, opts)
}

// Put makes a PUT request.
func (c *Client) Put(ctx context.Context, path string, opts *RequestOptions) (map[string]any, error) {
	return c.Request(ctx, http.MethodPut, path, opts)
}

// Patch makes a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, opts *RequestOptions) (map[string]any, error) {
	return c.Request(ctx, http.MethodPatch, path, opts)
}

// Delete makes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts *RequestOptions) (map[string]any, error) {
	return c.Request(ctx, http.MethodDelete, path, opts)
}
