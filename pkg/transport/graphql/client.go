package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/saturnines/blocktap-go/pkg/errors"
	"github.com/saturnines/blocktap-go/pkg/logging"
)

// HTTPDoer is the minimal interface the client needs from *http.Client.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client executes GraphQL operations.
type Client struct {
	doer   HTTPDoer
	logger *slog.Logger
}

// NewClient wraps an HTTPDoer (e.g. *http.Client).
func NewClient(doer HTTPDoer, opts ...ClientOption) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{doer: doer, logger: logging.Nop()}
	c.ApplyOptions(opts...)
	return c
}

// Execute sends a built request.
func (c *Client) Execute(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}

// Do builds the request, sends it once and decodes the envelope. GraphQL
// errors inside a well-formed envelope are not an error here; the caller
// decides what to do with them. op names the call in errors and logs.
func (c *Client) Do(ctx context.Context, op string, b *Builder) (*Response, error) {
	req, err := b.Build(ctx)
	if err != nil {
		return nil, c.fail(op, "", 0, fmt.Errorf("build request: %w", err))
	}
	reqID := req.Header.Get(RequestIDHeader)

	start := time.Now()
	resp, err := c.Execute(req)
	if err != nil {
		return nil, c.fail(op, reqID, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(op, reqID, resp.StatusCode, fmt.Errorf("read response body: %w", err))
	}

	c.logger.Debug("graphql round trip",
		"op", op,
		"request_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	envelope, decodeErr := decodeEnvelope(body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// GraphQL-over-HTTP servers answer bad queries with 4xx and a normal
		// error envelope; that is still a GraphQL-level response.
		if decodeErr == nil && envelope.HasErrors() {
			envelope.StatusCode = resp.StatusCode
			return envelope, nil
		}
		return nil, c.fail(op, reqID, resp.StatusCode, fmt.Errorf("unexpected status: %s", resp.Status))
	}
	if decodeErr != nil {
		return nil, c.fail(op, reqID, resp.StatusCode, decodeErr)
	}

	envelope.StatusCode = resp.StatusCode
	return envelope, nil
}

func (c *Client) fail(op, reqID string, status int, err error) error {
	c.logger.Warn("graphql request failed",
		"op", op,
		"request_id", reqID,
		"status", status,
		"error", err,
	)
	return errors.NewRequestError(op, status, err)
}

// decodeEnvelope checks body is a GraphQL response: a JSON object with
// data, errors, or both.
func decodeEnvelope(body []byte) (*Response, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, errors.WrapError(err, errors.ErrDecode, "decode response")
	}
	_, hasData := probe["data"]
	_, hasErrors := probe["errors"]
	if !hasData && !hasErrors {
		return nil, errors.WrapError(fmt.Errorf("missing data and errors"), errors.ErrDecode, "decode response")
	}

	var envelope Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.WrapError(err, errors.ErrDecode, "decode response")
	}
	return &envelope, nil
}
