package graphql

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/saturnines/blocktap-go/pkg/auth"
)

// BuilderOption configures the Builder.
type BuilderOption func(*Builder)

// WithHeader adds a header to every GraphQL request.
func WithHeader(key, value string) BuilderOption {
	return func(b *Builder) {
		if b.Headers == nil {
			b.Headers = make(map[string]string)
		}
		b.Headers[key] = value
	}
}

// WithHeaders adds multiple headers to every GraphQL request.
func WithHeaders(headers map[string]string) BuilderOption {
	return func(b *Builder) {
		if b.Headers == nil {
			b.Headers = make(map[string]string)
		}
		for k, v := range headers {
			b.Headers[k] = v
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) BuilderOption {
	return WithHeader("User-Agent", userAgent)
}

// WithAuthHandler sets a custom auth handler.
func WithAuthHandler(h auth.Handler) BuilderOption {
	return func(b *Builder) {
		b.AuthHandler = h
	}
}

// WithVariable sets a single variable.
func WithVariable(key string, value interface{}) BuilderOption {
	return func(b *Builder) {
		if b.Request.Variables == nil {
			b.Request.Variables = make(map[string]interface{})
		}
		b.Request.Variables[key] = value
	}
}

// ApplyOptions applies BuilderOption functions in order.
func (b *Builder) ApplyOptions(opts ...BuilderOption) {
	for _, opt := range opts {
		opt(b)
	}
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithTimeout sets a timeout on the HTTP client (if it's an *http.Client).
// The client is copied first; the one passed to NewClient keeps its own.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if httpClient, ok := c.doer.(*http.Client); ok {
			cp := *httpClient
			cp.Timeout = timeout
			c.doer = &cp
		}
	}
}

// WithLogger sets the logger for round trips and failures.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// ApplyOptions applies ClientOption functions in order.
func (c *Client) ApplyOptions(opts ...ClientOption) {
	for _, opt := range opts {
		opt(c)
	}
}
