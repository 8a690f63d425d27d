// Package money is the single entry point for currency arithmetic in the
// financing engine. Every amount is a base-10 decimal with two fractional
// digits; binary floating point is never used for money, so conservation
// properties (sum of distributed parts equals the distributed total) hold
// exactly across schedules of any length.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by every monetary amount.
const Scale = 2

// Tolerance is the largest absolute difference at which two amounts are
// still considered balanced. Truncating division leaves at most one cent of
// residue per independent edit, so balance checks compare against this
// rather than exact zero.
var Tolerance = decimal.New(1, -Scale) // 0.01

// Currency is a currency supported by the financing engine.
type Currency struct {
	code string
}

var validCurrencies = map[string]Currency{
	"PEN": {code: "PEN"},
	"USD": {code: "USD"},
}

// Supported currencies.
var (
	PEN = validCurrencies["PEN"]
	USD = validCurrencies["USD"]
)

// NewCurrency creates a Currency from a raw code.
func NewCurrency(code string) (Currency, error) {
	c, ok := validCurrencies[code]
	if !ok {
		return Currency{}, fmt.Errorf("unsupported currency %q", code)
	}
	return c, nil
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string { return c.code }

// String returns the currency code.
func (c Currency) String() string { return c.code }

// IsZero returns true if the currency has not been initialised.
func (c Currency) IsZero() bool { return c.code == "" }

// Truncate cuts d to Scale fractional digits, rounding toward zero.
func Truncate(d decimal.Decimal) decimal.Decimal {
	return d.RoundDown(Scale)
}

// Split distributes total across n parts. Each part is total/n truncated to
// Scale digits; the truncation remainder is added entirely to the last part
// so the parts always sum to exactly total. Splitting 100.00 three ways
// yields [33.33, 33.33, 33.34].
func Split(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}

	share := Truncate(total.Div(decimal.NewFromInt(int64(n))))
	parts := make([]decimal.Decimal, n)
	distributed := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = share
		distributed = distributed.Add(share)
	}
	parts[n-1] = total.Sub(distributed)
	return parts
}

// Sum adds all the given amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// WithinTolerance reports whether a and b differ by at most Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}
