package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Candle positions
const (
	CandleUnix = iota
	CandleOpen
	CandleHigh
	CandleLow
	CandleClose
	CandleVolume
)

// Candle is [unixSeconds, open, high, low, close, volume]. Every value is
// kept as the server's literal text.
type Candle [6]string

// UnmarshalJSON accepts strings or bare numbers; numbers keep their text.
func (c *Candle) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("candle: %w", err)
	}
	if len(parts) != len(c) {
		return fmt.Errorf("candle: expected %d values, got %d", len(c), len(parts))
	}

	var out Candle
	for i, raw := range parts {
		raw = bytes.TrimSpace(raw)
		switch {
		case len(raw) > 0 && raw[0] == '"':
			if err := json.Unmarshal(raw, &out[i]); err != nil {
				return fmt.Errorf("candle[%d]: %w", i, err)
			}
		case bytes.Equal(raw, []byte("null")):
			// leave empty
		default:
			var n json.Number
			if err := json.Unmarshal(raw, &n); err != nil {
				return fmt.Errorf("candle[%d]: %w", i, err)
			}
			out[i] = n.String()
		}
	}
	*c = out
	return nil
}

func (c Candle) Unix() (int64, error) {
	return strconv.ParseInt(c[CandleUnix], 10, 64)
}

// Time returns the bucket open time in UTC.
func (c Candle) Time() (time.Time, error) {
	sec, err := c.Unix()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0).UTC(), nil
}

func (c Candle) Open() string   { return c[CandleOpen] }
func (c Candle) High() string   { return c[CandleHigh] }
func (c Candle) Low() string    { return c[CandleLow] }
func (c Candle) Close() string  { return c[CandleClose] }
func (c Candle) Volume() string { return c[CandleVolume] }

// Decimal parses position i without going through float64.
func (c Candle) Decimal(i int) (decimal.Decimal, error) {
	if i < 0 || i >= len(c) {
		return decimal.Zero, fmt.Errorf("candle: index %d out of range", i)
	}
	return decimal.NewFromString(c[i])
}
