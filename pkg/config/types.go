package config

import "time"

const (
	// DefaultEndpoint is the production Blocktap GraphQL endpoint.
	DefaultEndpoint = "https://api.blocktap.io/graphql"

	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "blocktap-go"
	DefaultLogLevel  = "info"

	// Environment variables read by FromEnv
	EnvAPIKey   = "BLOCKTAP_KEY"
	EnvEndpoint = "BLOCKTAP_ENDPOINT"
	EnvTimeout  = "BLOCKTAP_TIMEOUT"
)

// Config represents the client configuration
type Config struct {
	APIKey    string            `yaml:"api_key,omitempty"`    // Optional: unlocks restricted fields
	Endpoint  string            `yaml:"endpoint,omitempty"`   // GraphQL URL (default DefaultEndpoint)
	Timeout   time.Duration     `yaml:"timeout,omitempty"`    // Per-request HTTP timeout
	UserAgent string            `yaml:"user_agent,omitempty"` // User-Agent header
	Headers   map[string]string `yaml:"headers,omitempty"`    // Extra headers sent on every request
	LogLevel  string            `yaml:"log_level,omitempty"`  // debug, info, warn, error
}

// Clone returns a deep copy so a client can own its config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.Headers != nil {
		out.Headers = make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			out.Headers[k] = v
		}
	}
	return &out
}
