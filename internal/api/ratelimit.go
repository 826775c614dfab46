package api

import (
	"net/http"
	"strconv"
)

// Rate limit defaults reported by the API when headers are present but a
// specific value is missing.
const (
	defaultLimit      = 100
	defaultRemaining  = 100
	defaultIntervalMS = 10000
)

// RateLimitInfo is the rate limit state parsed from API response headers.
// It is derived fresh from each response that carries rate-limit headers and
// never persisted.
type RateLimitInfo struct {
	// Limit is the request quota per interval.
	Limit int `json:"limit"`
	// Remaining is the quota left in the current window.
	Remaining int `json:"remaining"`
	// Reset is the window reset time in epoch seconds, 0 when unknown.
	Reset float64 `json:"reset,omitempty"`
	// IntervalMS is the window length in milliseconds.
	IntervalMS int `json:"interval_ms"`
}

// recognized rate limit headers; the API omits them on some endpoints
// (e.g. customFields, customValues).
var rateLimitHeaders = []string{
	"X-Ratelimit-Remaining",
	"X-Ratelimit-Max",
	"X-Ratelimit-Limit",
}

// hasRateLimitHeaders reports whether the response carries at least one
// recognized rate limit header.
func hasRateLimitHeaders(h http.Header) bool {
	for _, name := range rateLimitHeaders {
		if h.Get(name) != "" {
			return true
		}
	}
	return false
}

// parseRateLimitInfo parses rate limit info from response headers.
// The API uses X-RateLimit-Max, X-RateLimit-Remaining and
// X-RateLimit-Interval-Milliseconds.
func parseRateLimitInfo(h http.Header) RateLimitInfo {
	info := RateLimitInfo{
		Limit:      headerInt(h, defaultLimit, "X-Ratelimit-Max", "X-Ratelimit-Limit"),
		Remaining:  headerInt(h, defaultRemaining, "X-Ratelimit-Remaining"),
		IntervalMS: headerInt(h, defaultIntervalMS, "X-Ratelimit-Interval-Milliseconds", "X-Ratelimit-Interval-Ms"),
	}

	if v := h.Get("X-Ratelimit-Reset"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil && t > 0 {
			info.Reset = t
		}
	}

	return info
}

// headerInt returns the first parseable integer among the named headers,
// or the fallback.
func headerInt(h http.Header, fallback int, names ...string) int {
	for _, name := range names {
		v := h.Get(name)
		if v == "" {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
