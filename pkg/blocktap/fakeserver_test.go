package blocktap

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saturnines/blocktap-go/pkg/transport/graphql"
	"github.com/saturnines/blocktap-go/pkg/types"
)

const testKey = "test-blocktap-key"

func strPtr(s string) *string { return &s }

func optionPtr(o types.OptionType) *types.OptionType { return &o }

var fixtureMarkets = []types.Market{
	{ID: "coinbasepro_btc_usd", MarketSymbol: "CoinbasePro:BTC/USD", MarketType: types.MarketTypeSpot, MarketStatus: types.MarketStatusActive,
		ExchangeSymbol: "CoinbasePro", BaseSymbol: "BTC", QuoteSymbol: "USD", RemoteID: "BTC-USD"},
	{ID: "binance_btc_usdt", MarketSymbol: "Binance:BTC/USDT", MarketType: types.MarketTypeSpot, MarketStatus: types.MarketStatusActive,
		ExchangeSymbol: "Binance", BaseSymbol: "BTC", QuoteSymbol: "USDT", RemoteID: "BTCUSDT"},
	{ID: "binance_eth_btc", MarketSymbol: "Binance:ETH/BTC", MarketType: types.MarketTypeSpot, MarketStatus: types.MarketStatusInactive,
		ExchangeSymbol: "Binance", BaseSymbol: "ETH", QuoteSymbol: "BTC", RemoteID: "ETHBTC"},
	{ID: "bitmex_btc_usd", MarketSymbol: "BitMEX:BTC/USD", MarketType: types.MarketTypeSwap, MarketStatus: types.MarketStatusActive,
		ExchangeSymbol: "BitMEX", BaseSymbol: "BTC", QuoteSymbol: "USD", RemoteID: "XBTUSD"},
	{ID: "bitmex_btc_usd_z20", MarketSymbol: "BitMEX:BTC/USD Z20", MarketType: types.MarketTypeFutures, MarketStatus: types.MarketStatusActive,
		ExchangeSymbol: "BitMEX", BaseSymbol: "BTC", QuoteSymbol: "USD", RemoteID: "XBTZ20"},
	{ID: "ledgerx_btc_usd_20925827", MarketSymbol: "LedgerX:BTC/USD 2020-12-18 5000 Call", MarketType: types.MarketTypeOption, MarketStatus: types.MarketStatusActive,
		ExchangeSymbol: "LedgerX", BaseSymbol: "BTC", QuoteSymbol: "USD", RemoteID: "20925827",
		ExpiryDate: strPtr("2020-12-18"), OptionType: optionPtr(types.OptionTypeCall), OptionStrike: strPtr("5000.00000000")},
	{ID: "ledgerx_btc_usd_20925828", MarketSymbol: "LedgerX:BTC/USD 2020-12-18 4000 Put", MarketType: types.MarketTypeOption, MarketStatus: types.MarketStatusActive,
		ExchangeSymbol: "LedgerX", BaseSymbol: "BTC", QuoteSymbol: "USD", RemoteID: "20925828",
		ExpiryDate: strPtr("2020-12-18"), OptionType: optionPtr(types.OptionTypePut), OptionStrike: strPtr("4000.00000000")},
}

var fixtureCurrencies = []types.Currency{
	{CurrencySymbol: "BTC", CurrencyName: "Bitcoin", IsActive: true},
	{CurrencySymbol: "BTG", CurrencyName: "Bitcoin Gold", IsActive: true},
	{CurrencySymbol: "ETH", CurrencyName: "Ethereum", IsActive: true},
	{CurrencySymbol: "XDN", CurrencyName: "DigitalNote", IsActive: false},
}

var fixtureExchanges = []types.Exchange{
	{ExchangeSymbol: "Binance", ExchangeName: "Binance", IsActive: true},
	{ExchangeSymbol: "CoinbasePro", ExchangeName: "Coinbase Pro", IsActive: true},
	{ExchangeSymbol: "LedgerX", ExchangeName: "LedgerX", IsActive: true},
	{ExchangeSymbol: "Cryptopia", ExchangeName: "Cryptopia", IsActive: false},
}

const graphqlPath = "/graphql"

var (
	enumFilterRe = regexp.MustCompile(`(marketStatus|marketType|optionType): \{_eq: (\w+)\}`)
	resolutionRe = regexp.MustCompile(`resolution: ?(_\w+)`)
	literalIDRe  = regexp.MustCompile(`market\(id: ?"([^"]+)"\)`)
	operationRe  = regexp.MustCompile(`^\s*query\s+(\w+)`)
)

// fakeBlocktap answers the documents this package builds from a fixed
// data set, the way the hosted service would.
type fakeBlocktap struct {
	srv      *httptest.Server
	requests atomic.Int32

	mu       sync.Mutex
	lastAuth string
	lastReq  graphql.Request
	headers  http.Header
}

func newFakeBlocktap(t *testing.T) *fakeBlocktap {
	t.Helper()
	f := &fakeBlocktap{}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBlocktap) URL() string {
	return f.srv.URL + graphqlPath
}

func (f *fakeBlocktap) client(opts ...Option) *Client {
	return New(append([]Option{WithEndpoint(f.URL()), WithAPIKey(testKey)}, opts...)...)
}

func (f *fakeBlocktap) anonymous(opts ...Option) *Client {
	return New(append([]Option{WithEndpoint(f.URL())}, opts...)...)
}

func (f *fakeBlocktap) last() (string, graphql.Request, http.Header) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth, f.lastReq, f.headers
}

func (f *fakeBlocktap) serve(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)

	if r.URL.Path != graphqlPath {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req graphql.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorsBody("POST body sent invalid JSON."))
		return
	}

	authed := r.Header.Get("Authorization") == testKey
	f.mu.Lock()
	f.lastAuth = r.Header.Get("Authorization")
	f.lastReq = req
	f.headers = r.Header.Clone()
	f.mu.Unlock()

	var op string
	if m := operationRe.FindStringSubmatch(req.Query); m != nil {
		op = m[1]
	}

	switch op {
	case "currencies":
		writeData(w, "currencies", f.currencies(req.Variables))
	case "exchanges":
		writeData(w, "exchanges", fixtureExchanges)
	case "markets":
		writeData(w, "markets", f.markets(req))
	case "market":
		writeData(w, "market", findMarket(stringVar(req.Variables, "id")))
	case "candles":
		f.candles(w, req, authed)
	case "trades":
		f.trades(w, req)
	default:
		f.raw(w, req, authed)
	}
}

func (f *fakeBlocktap) currencies(vars map[string]interface{}) []types.Currency {
	out := []types.Currency{}
	for _, c := range fixtureCurrencies {
		if p, ok := vars["currencySymbol"].(string); ok && !like(p, c.CurrencySymbol) {
			continue
		}
		if p, ok := vars["currencyName"].(string); ok && !like(p, c.CurrencyName) {
			continue
		}
		if a, ok := vars["isActive"].(bool); ok && a != c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (f *fakeBlocktap) markets(req graphql.Request) []types.Market {
	enums := map[string]string{}
	for _, m := range enumFilterRe.FindAllStringSubmatch(req.Query, -1) {
		enums[m[1]] = m[2]
	}

	out := []types.Market{}
	for _, m := range fixtureMarkets {
		if v, ok := req.Variables["exchangeSymbol"].(string); ok && v != m.ExchangeSymbol {
			continue
		}
		if v, ok := req.Variables["baseSymbol"].(string); ok && v != m.BaseSymbol {
			continue
		}
		if v, ok := req.Variables["quoteSymbol"].(string); ok && v != m.QuoteSymbol {
			continue
		}
		if v, ok := enums["marketStatus"]; ok && v != string(m.MarketStatus) {
			continue
		}
		if v, ok := enums["marketType"]; ok && v != string(m.MarketType) {
			continue
		}
		if v, ok := enums["optionType"]; ok && (m.OptionType == nil || v != string(*m.OptionType)) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (f *fakeBlocktap) candles(w http.ResponseWriter, req graphql.Request, authed bool) {
	if findMarket(stringVar(req.Variables, "id")) == nil {
		writeData(w, "market", nil)
		return
	}
	if !authed {
		writeData(w, "market", map[string]interface{}{"ohlcv": nil})
		return
	}

	m := resolutionRe.FindStringSubmatch(req.Query)
	if m == nil || !types.CandlePeriod(m[1]).Valid() {
		writeJSON(w, http.StatusBadRequest, errorsBody("Expected type CandleResolution"))
		return
	}
	period := types.CandlePeriod(m[1]).Duration()

	start, end, ok := parseRange(req.Variables)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data":   map[string]interface{}{"market": nil},
			"errors": []map[string]string{{"message": "Invalid start or end"}},
		})
		return
	}

	candles := [][]string{}
	for ts := start; ts.Before(end); ts = ts.Add(period) {
		i := len(candles)
		if i == 0 {
			candles = append(candles, []string{
				fmt.Sprint(ts.Unix()), "7165.72000000", "7165.72000000", "7136.05000000", "7150.35000000", "250.84981195",
			})
			continue
		}
		candles = append(candles, []string{
			fmt.Sprint(ts.Unix()),
			fmt.Sprintf("%d.%08d", 7150+i, i),
			fmt.Sprintf("%d.%08d", 7160+i, i),
			fmt.Sprintf("%d.%08d", 7140+i, i),
			fmt.Sprintf("%d.%08d", 7155+i, i),
			fmt.Sprintf("%d.%08d", 100+i, i),
		})
	}
	writeData(w, "market", map[string]interface{}{"ohlcv": candles})
}

func (f *fakeBlocktap) trades(w http.ResponseWriter, req graphql.Request) {
	if findMarket(stringVar(req.Variables, "id")) == nil {
		writeData(w, "market", nil)
		return
	}
	start, _, ok := parseRange(req.Variables)
	if !ok {
		writeJSON(w, http.StatusOK, errorsBody("Invalid start or end"))
		return
	}

	base := start.UnixMilli() + 222
	trades := make([]types.Trade, 41)
	for i := range trades {
		side := types.TradeSideBid
		if i%2 == 0 {
			side = types.TradeSideAsk
		}
		trades[i] = types.Trade{
			ID:     fmt.Sprint(80350317 + i),
			Unix:   base + int64(i)*1000,
			Side:   side,
			Price:  fmt.Sprintf("7165.%08d", 72000000-i),
			Amount: fmt.Sprintf("0.%08d", 1392747+i),
		}
	}
	writeData(w, "market", map[string]interface{}{"trades": trades})
}

// raw handles hand-written documents sent through Query.
func (f *fakeBlocktap) raw(w http.ResponseWriter, req graphql.Request, authed bool) {
	if strings.Contains(req.Query, "{}") {
		writeJSON(w, http.StatusBadRequest, errorsBody(`Syntax Error: Expected Name, found "}".`))
		return
	}

	m := literalIDRe.FindStringSubmatch(req.Query)
	if m == nil {
		writeJSON(w, http.StatusOK, errorsBody(`Field "market" argument "id" of type "String!" is required.`))
		return
	}
	market := findMarket(m[1])
	if market == nil {
		writeData(w, "market", nil)
		return
	}

	out := map[string]interface{}{"id": market.ID}
	if strings.Contains(req.Query, "ohlcv") {
		if authed {
			out["ohlcv"] = [][]string{{"1577836800", "7165.72", "7165.72", "7136.05", "7150.35", "250.84981195"}}
		} else {
			out["ohlcv"] = nil
		}
	}
	writeData(w, "market", out)
}

func findMarket(id string) *types.Market {
	for i := range fixtureMarkets {
		if fixtureMarkets[i].ID == id {
			m := fixtureMarkets[i]
			return &m
		}
	}
	return nil
}

func parseRange(vars map[string]interface{}) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339Nano, stringVar(vars, "start"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339Nano, stringVar(vars, "end"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func stringVar(vars map[string]interface{}, key string) string {
	s, _ := vars[key].(string)
	return s
}

// like implements the SQL LIKE subset the API supports: % matches anything.
func like(pattern, s string) bool {
	re := "^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), "%", ".*") + "$"
	return regexp.MustCompile(re).MatchString(s)
}

func errorsBody(msg string) map[string]interface{} {
	return map[string]interface{}{"errors": []map[string]string{{"message": msg}}}
}

func writeData(w http.ResponseWriter, root string, v interface{}) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": map[string]interface{}{root: v}})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
