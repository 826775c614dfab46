package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// sleepRecorder captures backoff sleeps instead of waiting.
type sleepRecorder struct {
	durations []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.durations = append(r.durations, d)
	return nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *sleepRecorder) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	rec := &sleepRecorder{}
	client := New("test-token", "loc-123", WithBaseURL(server.URL), WithSleep(rec.sleep))
	t.Cleanup(client.Close)
	return client, rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRequestHeadersAndLocation(t *testing.T) {
	var gotReq *http.Request
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}))

	result, err := client.Get(context.Background(), "/contacts/", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if result["ok"] != true {
		t.Errorf("result = %v, want ok=true", result)
	}

	if got := gotReq.Header.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("Authorization = %q", got)
	}
	if got := gotReq.Header.Get("Version"); got != "2021-07-28" {
		t.Errorf("Version = %q", got)
	}
	if got := gotReq.Header.Get("Accept"); got != "application/json" {
		t.Errorf("Accept = %q", got)
	}
	if got := gotReq.URL.Query().Get("locationId"); got != "loc-123" {
		t.Errorf("locationId param = %q, want injected location", got)
	}
}

func TestLocationInjectionRules(t *testing.T) {
	tests := []struct {
		name string
		opts *RequestOptions
		want map[string]string
	}{
		{
			name: "omitted",
			opts: &RequestOptions{OmitLocation: true},
			want: map[string]string{"locationId": ""},
		},
		{
			name: "custom param name",
			opts: &RequestOptions{LocationParam: "location_id"},
			want: map[string]string{"location_id": "loc-123", "locationId": ""},
		},
		{
			name: "explicit value wins",
			opts: &RequestOptions{Params: map[string]string{"locationId": "other"}},
			want: map[string]string{"locationId": "other"},
		},
		{
			name: "empty params stripped",
			opts: &RequestOptions{Params: map[string]string{"query": "", "limit": "5"}},
			want: map[string]string{"query": "", "limit": "5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var query map[string][]string
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				query = r.URL.Query()
				writeJSON(w, http.StatusOK, map[string]any{})
			}))

			if _, err := client.Get(context.Background(), "/x", tt.opts); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			for key, want := range tt.want {
				got := ""
				if vs := query[key]; len(vs) > 0 {
					got = vs[0]
				}
				if got != want {
					t.Errorf("param %q = %q, want %q", key, got, want)
				}
			}
		})
	}
}

func TestRetryOn429ThenSuccess(t *testing.T) {
	attempts := 0
	client, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("X-Ratelimit-Max", "100")
			w.Header().Set("X-Ratelimit-Remaining", "0")
			w.Header().Set("X-Ratelimit-Interval-Milliseconds", "2000")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("X-Ratelimit-Max", "100")
		w.Header().Set("X-Ratelimit-Remaining", "99")
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}))

	result, err := client.Get(context.Background(), "/x", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if result["ok"] != true {
		t.Errorf("result = %v, want ok=true", result)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(rec.durations) != 1 {
		t.Fatalf("recorded %d sleeps, want 1", len(rec.durations))
	}
	// Interval plus the buffer, since no reset time was given.
	if want := 2*time.Second + retryBuffer; rec.durations[0] != want {
		t.Errorf("sleep = %v, want %v", rec.durations[0], want)
	}
}

func TestRetryWaitPrefersResetTime(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	reset := float64(now.UnixNano())/1e9 + 5

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("X-Ratelimit-Remaining", "0")
			w.Header().Set("X-Ratelimit-Interval-Milliseconds", "1000")
			w.Header().Set("X-Ratelimit-Reset", fmt.Sprintf("%.3f", reset))
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("X-Ratelimit-Remaining", "99")
		writeJSON(w, http.StatusOK, map[string]any{})
	}))
	defer server.Close()

	rec := &sleepRecorder{}
	client := New("t", "", WithBaseURL(server.URL), WithSleep(rec.sleep), WithClock(func() time.Time { return now }))
	defer client.Close()

	if _, err := client.Get(context.Background(), "/x", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(rec.durations) != 1 {
		t.Fatalf("recorded %d sleeps, want 1", len(rec.durations))
	}
	// The reset is five seconds out, longer than the one second interval.
	got := rec.durations[0]
	want := 5*time.Second + retryBuffer
	if diff := got - want; diff < -10*time.Millisecond || diff > 10*time.Millisecond {
		t.Errorf("sleep = %v, want about %v", got, want)
	}
}

func TestRateLimitExhaustion(t *testing.T) {
	attempts := 0
	client, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("X-Ratelimit-Remaining", "0")
		w.Header().Set("X-Ratelimit-Interval-Milliseconds", "100")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.Get(context.Background(), "/x", nil)

	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("error = %v, want RateLimitError", err)
	}
	if rle.Attempts != defaultMaxRetries {
		t.Errorf("Attempts = %d, want %d", rle.Attempts, defaultMaxRetries)
	}
	if attempts != defaultMaxRetries {
		t.Errorf("server saw %d attempts, want %d", attempts, defaultMaxRetries)
	}
	// The final 429 fails immediately without sleeping.
	if len(rec.durations) != defaultMaxRetries-1 {
		t.Errorf("recorded %d sleeps, want %d", len(rec.durations), defaultMaxRetries-1)
	}
}

func TestMaxRetriesOption(t *testing.T) {
	attempts := 0
	client, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.Get(context.Background(), "/x", &RequestOptions{MaxRetries: 1})

	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("error = %v, want RateLimitError", err)
	}
	if attempts != 1 {
		t.Errorf("server saw %d attempts, want 1", attempts)
	}
	if len(rec.durations) != 0 {
		t.Errorf("recorded %d sleeps, want 0", len(rec.durations))
	}
}

func TestLowWaterDelay(t *testing.T) {
	client, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ratelimit-Remaining", "3")
		writeJSON(w, http.StatusOK, map[string]any{})
	}))

	if _, err := client.Get(context.Background(), "/x", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(rec.durations) != 1 || rec.durations[0] != lowWaterDelay {
		t.Errorf("sleeps = %v, want one %v delay", rec.durations, lowWaterDelay)
	}
}

func TestRateLimitInfoTracking(t *testing.T) {
	withHeaders := true
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if withHeaders {
			w.Header().Set("X-Ratelimit-Max", "200")
			w.Header().Set("X-Ratelimit-Remaining", "42")
			w.Header().Set("X-Ratelimit-Interval-Milliseconds", "5000")
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	}))

	if info := client.RateLimitInfo(); info != nil {
		t.Errorf("RateLimitInfo() = %+v before any request, want nil", info)
	}

	if _, err := client.Get(context.Background(), "/x", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	info := client.RateLimitInfo()
	if info == nil {
		t.Fatal("RateLimitInfo() = nil after tracked response")
	}
	if info.Limit != 200 || info.Remaining != 42 || info.IntervalMS != 5000 {
		t.Errorf("RateLimitInfo() = %+v", info)
	}

	// A response without headers must not clobber the tracked state.
	withHeaders = false
	if _, err := client.Get(context.Background(), "/x", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := client.RateLimitInfo(); got == nil || got.Remaining != 42 {
		t.Errorf("RateLimitInfo() = %+v after headerless response, want unchanged", got)
	}
}

func TestAPIErrorParsing(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantBody    bool
	}{
		{
			name:        "json message",
			status:      400,
			body:        `{"message": "Invalid email", "statusCode": 400}`,
			wantMessage: "Invalid email",
			wantBody:    true,
		},
		{
			name:        "json error key",
			status:      401,
			body:        `{"error": "Unauthorized"}`,
			wantMessage: "Unauthorized",
			wantBody:    true,
		},
		{
			name:        "raw text",
			status:      502,
			body:        "Bad Gateway",
			wantMessage: "Bad Gateway",
		},
		{
			name:        "empty body",
			status:      500,
			body:        "",
			wantMessage: "HTTP 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts++
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))

			_, err := client.Get(context.Background(), "/x", nil)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want APIError", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if tt.wantBody && apiErr.Body == nil {
				t.Error("Body = nil, want parsed JSON")
			}
			// Client errors are not retried.
			if attempts != 1 {
				t.Errorf("server saw %d attempts, want 1", attempts)
			}
		})
	}
}

func TestNoContentResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	result, err := client.Delete(context.Background(), "/x", nil)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if result == nil || len(result) != 0 {
		t.Errorf("result = %v, want empty map", result)
	}
}

func TestNonJSONResponseBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "plain text")
	}))

	result, err := client.Get(context.Background(), "/x", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if result["text"] != "plain text" {
		t.Errorf("result = %v, want text fallback", result)
	}
}

func TestJSONRequestBody(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusCreated, map[string]any{})
	}))

	_, err := client.Post(context.Background(), "/x", &RequestOptions{
		Body: map[string]any{"email": "a@b.c"},
	})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody["email"] != "a@b.c" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestMultipartUpload(t *testing.T) {
	var gotContentType, gotField, gotFile string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
		}
		gotField = r.FormValue("name")
		if file, _, err := r.FormFile("file"); err == nil {
			data, _ := io.ReadAll(file)
			file.Close()
			gotFile = string(data)
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	}))

	_, err := client.Post(context.Background(), "/medias/upload-file", &RequestOptions{
		Body: map[string]any{"name": "invoice"},
		Files: []Upload{
			{Field: "file", Filename: "invoice.pdf", Content: []byte("pdf bytes")},
		},
	})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("Content-Type = %q, want multipart", gotContentType)
	}
	if gotField != "invoice" {
		t.Errorf("form field = %q", gotField)
	}
	if gotFile != "pdf bytes" {
		t.Errorf("file content = %q", gotFile)
	}
}

func TestContextCancellationDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New("t", "", WithBaseURL(server.URL), WithSleep(func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}))
	defer client.Close()

	_, err := client.Get(context.Background(), "/x", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestParseRateLimitInfoDefaults(t *testing.T) {
	h := http.Header{}
	h.Set("X-Ratelimit-Remaining", "7")

	info := parseRateLimitInfo(h)
	if info.Remaining != 7 {
		t.Errorf("Remaining = %d, want 7", info.Remaining)
	}
	if info.Limit != defaultLimit {
		t.Errorf("Limit = %d, want default %d", info.Limit, defaultLimit)
	}
	if info.IntervalMS != defaultIntervalMS {
		t.Errorf("IntervalMS = %d, want default %d", info.IntervalMS, defaultIntervalMS)
	}
	if info.Reset != 0 {
		t.Errorf("Reset = %v, want 0", info.Reset)
	}
}

func TestParseRateLimitInfoAlternateHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("X-Ratelimit-Limit", "250")
	h.Set("X-Ratelimit-Interval-Ms", "60000")
	h.Set("X-Ratelimit-Reset", "1700000000.5")

	info := parseRateLimitInfo(h)
	if info.Limit != 250 {
		t.Errorf("Limit = %d, want 250", info.Limit)
	}
	if info.IntervalMS != 60000 {
		t.Errorf("IntervalMS = %d, want 60000", info.IntervalMS)
	}
	if info.Reset != 1700000000.5 {
		t.Errorf("Reset = %v", info.Reset)
	}
}

func TestHasRateLimitHeaders(t *testing.T) {
	with := http.Header{}
	with.Set("X-Ratelimit-Remaining", "5")
	if !hasRateLimitHeaders(with) {
		t.Error("hasRateLimitHeaders() = false with headers present")
	}
	if hasRateLimitHeaders(http.Header{}) {
		t.Error("hasRateLimitHeaders() = true with no headers")
	}
}
