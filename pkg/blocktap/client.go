// Package blocktap is a client for the Blocktap market-data GraphQL API.
//
//	c := blocktap.New(blocktap.WithAPIKey(os.Getenv("BLOCKTAP_KEY")))
//	m, err := c.Market(ctx, "coinbasepro_btc_usd")
//
// Typed methods return an error when the server reports GraphQL errors.
// Query never does: it hands back the envelope and the caller inspects
// Errors itself.
package blocktap

import (
	"context"
	"log/slog"

	"github.com/saturnines/blocktap-go/pkg/auth"
	"github.com/saturnines/blocktap-go/pkg/config"
	"github.com/saturnines/blocktap-go/pkg/logging"
	"github.com/saturnines/blocktap-go/pkg/query"
	"github.com/saturnines/blocktap-go/pkg/transport/graphql"
	"github.com/saturnines/blocktap-go/pkg/types"
)

// Filters accepted by Currencies and Markets.
type (
	CurrencyFilter = query.CurrencyFilter
	MarketFilter   = query.MarketFilter
)

// Client is safe for concurrent use; its configuration never changes
// after New returns.
type Client struct {
	cfg       *config.Config
	auth      auth.Handler
	transport *graphql.Client
	logger    *slog.Logger
}

// New creates a client for the production endpoint. Options override
// the defaults. The endpoint is not checked here; a bad one fails the
// first call with a RequestError.
func New(opts ...Option) *Client {
	cfg := &config.Config{}
	(&config.Defaults{}).SetDefaults(cfg)
	return build(cfg, logging.Nop(), opts)
}

// NewFromConfig validates cfg and creates a client from it. cfg is
// copied, later changes to it have no effect. Logs go to stdout at
// cfg.LogLevel when it is set and are dropped otherwise; WithLogger
// overrides both.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	quiet := cfg.LogLevel == ""
	cfg, err := config.NewLoader(nil, &config.Defaults{},
		&config.EndpointValidator{},
		&config.TimeoutValidator{},
		&config.LogLevelValidator{},
	).Apply(cfg.Clone())
	if err != nil {
		return nil, err
	}
	if quiet {
		return build(cfg, logging.Nop(), opts), nil
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return build(cfg, logging.NewLogger(level), opts), nil
}

func build(cfg *config.Config, logger *slog.Logger, opts []Option) *Client {
	s := &settings{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	copts := []graphql.ClientOption{graphql.WithLogger(s.logger)}
	if s.doer == nil {
		copts = append(copts, graphql.WithTimeout(cfg.Timeout))
	}

	return &Client{
		cfg:       cfg,
		auth:      auth.CreateHandler(cfg),
		transport: graphql.NewClient(s.doer, copts...),
		logger:    s.logger,
	}
}

// Endpoint returns the GraphQL URL this client talks to.
func (c *Client) Endpoint() string {
	return c.cfg.Endpoint
}

// Authenticated reports whether an API key is configured.
func (c *Client) Authenticated() bool {
	return c.auth != nil
}

// Query sends req as-is and returns the raw envelope, GraphQL errors
// included. Only transport failures produce an error.
func (c *Client) Query(ctx context.Context, req graphql.Request) (*graphql.Response, error) {
	return c.transport.Do(ctx, "query", c.builder(req))
}

// Currencies lists currencies matching f. A nil f returns all of them.
func (c *Client) Currencies(ctx context.Context, f *CurrencyFilter) ([]types.Currency, error) {
	resp, err := c.do(ctx, "currencies", query.Currencies(f))
	if err != nil {
		return nil, err
	}
	return decodeList[types.Currency]("currencies", resp, query.RootCurrencies)
}

// Exchanges lists every exchange.
func (c *Client) Exchanges(ctx context.Context) ([]types.Exchange, error) {
	resp, err := c.do(ctx, "exchanges", query.Exchanges())
	if err != nil {
		return nil, err
	}
	return decodeList[types.Exchange]("exchanges", resp, query.RootExchanges)
}

// Markets lists markets matching every field set in f.
func (c *Client) Markets(ctx context.Context, f *MarketFilter) ([]types.Market, error) {
	req, err := query.Markets(f)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, "markets", req)
	if err != nil {
		return nil, err
	}
	return decodeList[types.Market]("markets", resp, query.RootMarkets)
}

// Market fetches one market. An unknown id is a RequestError wrapping
// errors.ErrNotFound.
func (c *Client) Market(ctx context.Context, id string) (*types.Market, error) {
	if err := validateMarketID(id); err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, "market", query.Market(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[types.Market]("market", resp, query.RootMarket)
}

// Candles returns OHLCV candles for marketID between start and end,
// oldest first. Both must be RFC 3339 date-times with a colon in any
// offset ("2020-01-01T00:00:00Z", "2020-01-01T00:00:00+00:00"); other
// ISO 8601 forms such as "+0000" or a bare date are rejected. Arguments are checked before any request is
// made. Without access to OHLCV data the result is nil with no error.
func (c *Client) Candles(ctx context.Context, marketID, start, end string, period types.CandlePeriod) ([]types.Candle, error) {
	if err := validateMarketID(marketID); err != nil {
		return nil, err
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	req, err := query.Candles(marketID, start, end, period)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, "candles", req)
	if err != nil {
		return nil, err
	}
	m, err := decodeOne[struct {
		OHLCV []types.Candle `json:"ohlcv"`
	}]("candles", resp, query.RootMarket)
	if err != nil {
		return nil, err
	}
	return m.OHLCV, nil
}

// Trades returns trades for marketID between start and end, oldest
// first. start and end must be RFC 3339 date-times as for Candles.
func (c *Client) Trades(ctx context.Context, marketID, start, end string) ([]types.Trade, error) {
	if err := validateMarketID(marketID); err != nil {
		return nil, err
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, "trades", query.Trades(marketID, start, end))
	if err != nil {
		return nil, err
	}
	m, err := decodeOne[struct {
		Trades []types.Trade `json:"trades"`
	}]("trades", resp, query.RootMarket)
	if err != nil {
		return nil, err
	}
	return m.Trades, nil
}

// do sends req and turns GraphQL errors into a RequestError.
func (c *Client) do(ctx context.Context, op string, req graphql.Request) (*graphql.Response, error) {
	resp, err := c.transport.Do(ctx, op, c.builder(req))
	if err != nil {
		return nil, err
	}
	if err := checkErrors(op, resp); err != nil {
		c.logger.Warn("graphql errors", "op", op, "error", err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) builder(req graphql.Request) *graphql.Builder {
	b := graphql.NewBuilder(c.cfg.Endpoint, req, nil, c.auth)
	b.ApplyOptions(
		graphql.WithHeaders(c.cfg.Headers),
		graphql.WithUserAgent(c.cfg.UserAgent),
	)
	return b
}
