// Package types holds the value objects returned by the Blocktap API and
// the closed enumerations used to filter them. Enum values are the
// server's GraphQL enum names verbatim.
package types

import (
	"time"

	"github.com/saturnines/blocktap-go/pkg/errors"
)

// MarketStatus is the trading status of a market.
type MarketStatus string

const (
	MarketStatusActive   MarketStatus = "Active"
	MarketStatusInactive MarketStatus = "Inactive"
	MarketStatusUnknown  MarketStatus = "Unknown"
)

func (s MarketStatus) Valid() bool {
	switch s {
	case MarketStatusActive, MarketStatusInactive, MarketStatusUnknown:
		return true
	}
	return false
}

// MarketType is the kind of instrument a market trades.
type MarketType string

const (
	MarketTypeSpot    MarketType = "Spot"
	MarketTypeFutures MarketType = "Futures"
	MarketTypeSwap    MarketType = "Swap"
	MarketTypeOption  MarketType = "Option"
)

func (t MarketType) Valid() bool {
	switch t {
	case MarketTypeSpot, MarketTypeFutures, MarketTypeSwap, MarketTypeOption:
		return true
	}
	return false
}

// OptionType is Call or Put. Only option markets carry one.
type OptionType string

const (
	OptionTypeCall OptionType = "Call"
	OptionTypePut  OptionType = "Put"
)

func (t OptionType) Valid() bool {
	return t == OptionTypeCall || t == OptionTypePut
}

// TradeSide is the taker side of a trade.
type TradeSide string

const (
	TradeSideBid TradeSide = "Bid"
	TradeSideAsk TradeSide = "Ask"
)

func (s TradeSide) Valid() bool {
	return s == TradeSideBid || s == TradeSideAsk
}

// CandlePeriod is a candle resolution, e.g. "_1h".
type CandlePeriod string

const (
	Period1m  CandlePeriod = "_1m"
	Period3m  CandlePeriod = "_3m"
	Period5m  CandlePeriod = "_5m"
	Period15m CandlePeriod = "_15m"
	Period30m CandlePeriod = "_30m"
	Period1h  CandlePeriod = "_1h"
	Period2h  CandlePeriod = "_2h"
	Period4h  CandlePeriod = "_4h"
	Period6h  CandlePeriod = "_6h"
	Period12h CandlePeriod = "_12h"
	Period1d  CandlePeriod = "_1d"
	Period3d  CandlePeriod = "_3d"
	Period1w  CandlePeriod = "_1w"
)

var periodDurations = map[CandlePeriod]time.Duration{
	Period1m:  time.Minute,
	Period3m:  3 * time.Minute,
	Period5m:  5 * time.Minute,
	Period15m: 15 * time.Minute,
	Period30m: 30 * time.Minute,
	Period1h:  time.Hour,
	Period2h:  2 * time.Hour,
	Period4h:  4 * time.Hour,
	Period6h:  6 * time.Hour,
	Period12h: 12 * time.Hour,
	Period1d:  24 * time.Hour,
	Period3d:  3 * 24 * time.Hour,
	Period1w:  7 * 24 * time.Hour,
}

func (p CandlePeriod) Valid() bool {
	_, ok := periodDurations[p]
	return ok
}

// Duration returns the bucket width, or 0 for an unknown period.
func (p CandlePeriod) Duration() time.Duration {
	return periodDurations[p]
}

// ExpectedCandles is how many full buckets of p fit in [start, end).
func ExpectedCandles(start, end time.Time, p CandlePeriod) int {
	d := p.Duration()
	if d == 0 || !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / d)
}

func ParseMarketStatus(s string) (MarketStatus, error) {
	return parseEnum("market status", MarketStatus(s))
}

func ParseMarketType(s string) (MarketType, error) {
	return parseEnum("market type", MarketType(s))
}

func ParseOptionType(s string) (OptionType, error) {
	return parseEnum("option type", OptionType(s))
}

func ParseCandlePeriod(s string) (CandlePeriod, error) {
	return parseEnum("candle period", CandlePeriod(s))
}

type enum interface {
	~string
	Valid() bool
}

func parseEnum[T enum](kind string, v T) (T, error) {
	if !v.Valid() {
		var zero T
		return zero, errors.Validation(kind, "unsupported value %q", string(v))
	}
	return v, nil
}
