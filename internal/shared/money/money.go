// Package money holds decimal helpers for meal costs.
// Costs never pass through float64: they are parsed, summed and rendered as
// exact decimals.
package money

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fraction digits stored and rendered for a cost.
const Scale = 2

// ErrInvalidAmount is returned when a value cannot be read as a decimal amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Parse reads a JSON number or a JSON string holding a number.
// The raw literal is handed to decimal directly so 0.1 stays 0.1.
func Parse(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return decimal.Zero, ErrInvalidAmount
		}
		s = strings.TrimSpace(str)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Sum adds values exactly.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// JSON renders d as a JSON number with Scale fraction digits, e.g. 19.75 or 12.50.
func JSON(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(Scale))
}
