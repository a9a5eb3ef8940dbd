package blocktap

import (
	"log/slog"
	"time"

	"github.com/saturnines/blocktap-go/pkg/config"
	"github.com/saturnines/blocktap-go/pkg/transport/graphql"
)

// Option configures a Client at construction time.
type Option func(*settings)

type settings struct {
	cfg    *config.Config
	doer   graphql.HTTPDoer
	logger *slog.Logger
}

// WithAPIKey sends key in the Authorization header. An empty key leaves
// the client anonymous.
func WithAPIKey(key string) Option {
	return func(s *settings) {
		s.cfg.APIKey = key
	}
}

// WithEndpoint overrides the GraphQL URL.
func WithEndpoint(url string) Option {
	return func(s *settings) {
		s.cfg.Endpoint = url
	}
}

// WithHTTPClient swaps the HTTP client. WithTimeout does not apply to it.
func WithHTTPClient(doer graphql.HTTPDoer) Option {
	return func(s *settings) {
		s.doer = doer
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.cfg.Timeout = d
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(s *settings) {
		if s.cfg.Headers == nil {
			s.cfg.Headers = make(map[string]string)
		}
		s.cfg.Headers[key] = value
	}
}

func WithUserAgent(ua string) Option {
	return func(s *settings) {
		s.cfg.UserAgent = ua
	}
}
