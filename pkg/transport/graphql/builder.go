package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/saturnines/blocktap-go/pkg/auth"
)

// RequestIDHeader tags every request so it can be matched in client and server logs.
const RequestIDHeader = "X-Request-Id"

// Builder constructs GraphQL requests.
type Builder struct {
	Endpoint    string
	Request     Request
	Headers     map[string]string
	AuthHandler auth.Handler
}

// NewBuilder sets up a GraphQL Builder.
// Endpoint is the full URL of your GraphQL endpoint.
func NewBuilder(
	endpoint string,
	request Request,
	headers map[string]string,
	authHandler auth.Handler,
) *Builder {
	return &Builder{
		Endpoint:    endpoint,
		Request:     request,
		Headers:     headers,
		AuthHandler: authHandler,
	}
}

// Build creates the *http.Request with JSON body.
func (b *Builder) Build(ctx context.Context) (*http.Request, error) {
	body := b.Request
	if body.Variables == nil {
		body.Variables = map[string]interface{}{}
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	for k, v := range b.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if b.AuthHandler != nil {
		if err := b.AuthHandler.ApplyAuth(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}
