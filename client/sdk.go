package client

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Default vendor endpoints. The events URL carries a %s slot for the user id.
const (
	defaultBandDataURL = "https://api-mifit.huami.com/v1/data/band_data.json"
	defaultEventsURL   = "https://api-mifit.zepp.com/users/%s/events"
	defaultWorkoutURL  = "https://api-mifit.huami.com/v1/sport/run/history.json"

	defaultTimeZone = "Europe/Berlin"
)

// --------------------------------------------------------------------
// debugTransport – optional HTTP round-trip logger
// --------------------------------------------------------------------

type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if debugEnabled() {
		reqDump, err := httputil.DumpRequestOut(req, true)
		if err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
		}
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		if debugEnabled() {
			log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		}
		return nil, err
	}

	if debugEnabled() {
		respDump, err := httputil.DumpResponse(resp, true)
		if err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
		}
	}
	return resp, nil
}

func debugEnabled() bool {
	return os.Getenv("AMAZFIT_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the vendor's private health-data API using a pre-extracted
// bearer token. One blocking request is in flight at a time; there is no
// retry, and any non-success status aborts the enclosing fetch.
type Client struct {
	creds    Credentials
	http     *http.Client
	timeZone string

	bandDataURL string
	eventsURL   string
	workoutURL  string
}

// New constructs a Client with optional functional arguments.
func New(creds Credentials, opts ...Option) (*Client, error) {
	c := &Client{
		creds:       creds,
		http:        &http.Client{Timeout: 30 * time.Second},
		timeZone:    defaultTimeZone,
		bandDataURL: defaultBandDataURL,
		eventsURL:   defaultEventsURL,
		workoutURL:  defaultWorkoutURL,
	}

	// Auto-enable debug via env variable without changing code.
	if debugEnabled() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew constructs a Client with panic-on-error semantics (for testing).
func MustNew(creds Credentials, opts ...Option) *Client {
	c, err := New(creds, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Close releases the underlying HTTP connections. Safe to call multiple times.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// ensureAuthenticated checks preconditions before any network call.
func (c *Client) ensureAuthenticated() error {
	if c.creds.AppToken == "" {
		return &preconditionError{"app token required, provide app_token or credentials"}
	}
	if c.creds.UserID == "" {
		return &preconditionError{"user id required, provide user_id explicitly"}
	}
	return nil
}

type preconditionError struct{ reason string }

func (e *preconditionError) Error() string { return e.reason }

func (e *preconditionError) Is(target error) bool { return target == ErrUnauthenticated }

// get issues one GET with the fixed vendor header set and query parameters.
func (c *Client) get(ctx context.Context, rawURL string, params url.Values) (*http.Response, error) {
	u := rawURL
	if len(params) > 0 {
		u = rawURL + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apptoken", c.creds.AppToken)
	req.Header.Set("appname", "com.xiaomi.hm.health")
	req.Header.Set("lang", "en")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	return c.http.Do(req)
}
