package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a single executed trade. Unix is in milliseconds.
type Trade struct {
	ID     string    `json:"id"`
	Unix   int64     `json:"unix"`
	Side   TradeSide `json:"side"`
	Price  string    `json:"price"`
	Amount string    `json:"amount"`
}

func (t Trade) Time() time.Time {
	return time.UnixMilli(t.Unix).UTC()
}

func (t Trade) PriceDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(t.Price)
}

func (t Trade) AmountDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(t.Amount)
}
