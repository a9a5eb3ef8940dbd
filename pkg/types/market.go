package types

import "github.com/shopspring/decimal"

// Market is a tradable instrument on an exchange. The option fields are
// set only when MarketType is Option.
type Market struct {
	ID             string       `json:"id"`
	MarketSymbol   string       `json:"marketSymbol"`
	MarketType     MarketType   `json:"marketType"`
	MarketStatus   MarketStatus `json:"marketStatus"`
	ExchangeSymbol string       `json:"exchangeSymbol"`
	BaseSymbol     string       `json:"baseSymbol"`
	QuoteSymbol    string       `json:"quoteSymbol"`
	RemoteID       string       `json:"remoteId"`

	ExpiryDate   *string     `json:"expiryDate,omitempty"`   // YYYY-MM-DD
	OptionType   *OptionType `json:"optionType,omitempty"`   // Call or Put
	OptionStrike *string     `json:"optionStrike,omitempty"` // decimal string
}

func (m Market) IsOption() bool {
	return m.MarketType == MarketTypeOption
}

// OptionStrikeDecimal parses the strike. ok is false for non-option markets.
func (m Market) OptionStrikeDecimal() (d decimal.Decimal, ok bool, err error) {
	if m.OptionStrike == nil {
		return decimal.Zero, false, nil
	}
	d, err = decimal.NewFromString(*m.OptionStrike)
	return d, err == nil, err
}

// Currency is an asset listed by Blocktap.
type Currency struct {
	CurrencySymbol string `json:"currencySymbol"`
	CurrencyName   string `json:"currencyName"`
	IsActive       bool   `json:"isActive"`
}

// Exchange is a venue Blocktap collects data from.
type Exchange struct {
	ExchangeSymbol string `json:"exchangeSymbol"`
	ExchangeName   string `json:"exchangeName"`
	IsActive       bool   `json:"isActive"`
}
