package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

// Money columns are NUMERIC(19, 4).
const (
	MoneyScale     = 4
	moneyPrecision = 19
)

var moneyLimit = decimal.New(1, moneyPrecision-MoneyScale)

// Decimal is a money field that accepts a JSON string ("12.50") or number (12.5).
type Decimal string

func (d *Decimal) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	*d = Decimal(b)
	return nil
}

func (d Decimal) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		OneOf: []*huma.Schema{
			{Type: huma.TypeString},
			{Type: huma.TypeNumber},
		},
		Description: "Decimal amount as a string or number",
	}
}

// Parse rejects values the money columns would round or overflow.
func (d Decimal) Parse() (decimal.Decimal, error) {
	v, err := decimal.NewFromString(string(d))
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !v.Equal(v.Truncate(MoneyScale)) {
		return decimal.Decimal{}, fmt.Errorf("more than %d decimal places", MoneyScale)
	}
	if v.Abs().GreaterThanOrEqual(moneyLimit) {
		return decimal.Decimal{}, errors.New("out of range")
	}
	return v, nil
}
