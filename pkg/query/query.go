// Package query builds the GraphQL documents behind each typed client
// method. Absent filters are left out entirely so server defaults apply.
package query

import (
	"fmt"

	"github.com/saturnines/blocktap-go/pkg/errors"
	"github.com/saturnines/blocktap-go/pkg/transport/graphql"
	"github.com/saturnines/blocktap-go/pkg/types"
)

// Root fields the response mapper unwraps.
const (
	RootCurrencies = "currencies"
	RootExchanges  = "exchanges"
	RootMarkets    = "markets"
	RootMarket     = "market"
)

const (
	currencyFields = `
currencySymbol
currencyName
isActive`

	exchangeFields = `
exchangeSymbol
exchangeName
isActive`

	marketFields = `
id
marketSymbol
marketType
marketStatus
exchangeSymbol
baseSymbol
quoteSymbol
remoteId
expiryDate
optionType
optionStrike`

	tradeFields = "id unix side price amount"
)

// CurrencyFilter narrows Currencies. Symbol and name are SQL LIKE
// patterns, so "BT%" matches every symbol starting with BT.
type CurrencyFilter struct {
	CurrencySymbol *string
	CurrencyName   *string
	IsActive       *bool
}

// MarketFilter narrows Markets. Every set field must match.
type MarketFilter struct {
	ExchangeSymbol *string
	BaseSymbol     *string
	QuoteSymbol    *string
	MarketStatus   *types.MarketStatus
	MarketType     *types.MarketType
	OptionType     *types.OptionType
}

func Currencies(f *CurrencyFilter) graphql.Request {
	args := newFilter()
	if f != nil {
		if f.CurrencySymbol != nil {
			args.variable("currencySymbol", "_like", "String", *f.CurrencySymbol)
		}
		if f.CurrencyName != nil {
			args.variable("currencyName", "_like", "String", *f.CurrencyName)
		}
		if f.IsActive != nil {
			args.variable("isActive", "_eq", "Boolean", *f.IsActive)
		}
	}
	return graphql.Request{
		Query:     document("currencies", args.declarations(), RootCurrencies, args.argument(), currencyFields),
		Variables: args.vars,
	}
}

func Exchanges() graphql.Request {
	return graphql.Request{
		Query:     document("exchanges", "", RootExchanges, "", exchangeFields),
		Variables: map[string]interface{}{},
	}
}

func Markets(f *MarketFilter) (graphql.Request, error) {
	args := newFilter()
	if f != nil {
		if f.ExchangeSymbol != nil {
			args.variable("exchangeSymbol", "_eq", "String", *f.ExchangeSymbol)
		}
		if f.BaseSymbol != nil {
			args.variable("baseSymbol", "_eq", "String", *f.BaseSymbol)
		}
		if f.QuoteSymbol != nil {
			args.variable("quoteSymbol", "_eq", "String", *f.QuoteSymbol)
		}
		if f.MarketStatus != nil {
			if !f.MarketStatus.Valid() {
				return graphql.Request{}, errors.Validation("marketStatus", "unsupported value %q", *f.MarketStatus)
			}
			args.enum("marketStatus", "_eq", string(*f.MarketStatus))
		}
		if f.MarketType != nil {
			if !f.MarketType.Valid() {
				return graphql.Request{}, errors.Validation("marketType", "unsupported value %q", *f.MarketType)
			}
			args.enum("marketType", "_eq", string(*f.MarketType))
		}
		if f.OptionType != nil {
			if !f.OptionType.Valid() {
				return graphql.Request{}, errors.Validation("optionType", "unsupported value %q", *f.OptionType)
			}
			args.enum("optionType", "_eq", string(*f.OptionType))
		}
	}
	return graphql.Request{
		Query:     document("markets", args.declarations(), RootMarkets, args.argument(), marketFields),
		Variables: args.vars,
	}, nil
}

func Market(id string) graphql.Request {
	return graphql.Request{
		Query:     document("market", "($id: String!)", RootMarket, "(id: $id)", marketFields),
		Variables: map[string]interface{}{"id": id},
	}
}

// Candles selects market.ohlcv for [start, end] at period.
func Candles(marketID, start, end string, period types.CandlePeriod) (graphql.Request, error) {
	if !period.Valid() {
		return graphql.Request{}, errors.Validation("period", "unsupported value %q", period)
	}
	ohlcv := fmt.Sprintf("ohlcv(resolution: %s, start: $start, end: $end)", period)
	return graphql.Request{
		Query:     document("candles", rangeDecls, RootMarket, "(id: $id)", ohlcv),
		Variables: rangeVars(marketID, start, end),
	}, nil
}

// Trades selects market.trades for [start, end].
func Trades(marketID, start, end string) graphql.Request {
	trades := fmt.Sprintf("trades(start: $start, end: $end) { %s }", tradeFields)
	return graphql.Request{
		Query:     document("trades", rangeDecls, RootMarket, "(id: $id)", trades),
		Variables: rangeVars(marketID, start, end),
	}
}

const rangeDecls = "($id: String!, $start: String!, $end: String!)"

func rangeVars(marketID, start, end string) map[string]interface{} {
	return map[string]interface{}{
		"id":    marketID,
		"start": start,
		"end":   end,
	}
}
