package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering sdk.go
// and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
)

// Option mutates the Client during New().
type Option func(*Client) error

// WithHTTPClient injects a custom *http.Client. Useful for setting transport
// timeouts, tracing, custom TLS settings, etc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithDebugLogging wraps the client's transport such that every
// request/response is logged when `enabled` is true.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			transport := c.http.Transport
			if transport == nil {
				transport = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: transport}
		}
		return nil
	}
}

// WithTimeZone sets the IANA time-zone name sent to endpoints that require
// one (blood oxygen).
func WithTimeZone(tz string) Option {
	return func(c *Client) error {
		if tz != "" {
			c.timeZone = tz
		}
		return nil
	}
}

// WithBandDataURL overrides the band-data endpoint.
func WithBandDataURL(u string) Option {
	return func(c *Client) error {
		c.bandDataURL = u
		return nil
	}
}

// WithEventsURL overrides the events endpoint pattern. The pattern must keep
// a single %s slot for the user id.
func WithEventsURL(pattern string) Option {
	return func(c *Client) error {
		c.eventsURL = pattern
		return nil
	}
}

// WithWorkoutHistoryURL overrides the workout history endpoint.
func WithWorkoutHistoryURL(u string) Option {
	return func(c *Client) error {
		c.workoutURL = u
		return nil
	}
}
