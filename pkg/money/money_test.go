package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    Currency
		wantErr bool
	}{
		{name: "PEN", code: "PEN", want: PEN},
		{name: "USD", code: "USD", want: USD},
		{name: "unsupported", code: "EUR", wantErr: true},
		{name: "lowercase", code: "pen", wantErr: true},
		{name: "empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCurrency(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, c.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "33.3333", want: "33.33"},
		{in: "33.3399", want: "33.33"},
		{in: "33.30", want: "33.3"},
		{in: "0.009", want: "0"},
		{in: "-33.339", want: "-33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := decimal.RequireFromString(tt.in)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(Truncate(d)),
				"Truncate(%s) = %s", tt.in, Truncate(d))
		})
	}
}

func TestSplit_RemainderGoesToLastPart(t *testing.T) {
	parts := Split(decimal.RequireFromString("100.00"), 3)

	require.Len(t, parts, 3)
	assert.True(t, decimal.RequireFromString("33.33").Equal(parts[0]))
	assert.True(t, decimal.RequireFromString("33.33").Equal(parts[1]))
	assert.True(t, decimal.RequireFromString("33.34").Equal(parts[2]))
}

func TestSplit_Conservation(t *testing.T) {
	tests := []struct {
		name  string
		total string
		n     int
	}{
		{name: "even split", total: "1200.00", n: 12},
		{name: "one cent residue", total: "100.00", n: 3},
		{name: "single part", total: "55.55", n: 1},
		{name: "tiny total many parts", total: "0.05", n: 48},
		{name: "long schedule", total: "185000.00", n: 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			parts := Split(total, tt.n)

			require.Len(t, parts, tt.n)
			assert.True(t, total.Equal(Sum(parts...)),
				"parts should sum to %s, got %s", total, Sum(parts...))

			// No part other than the last may exceed the truncated share.
			share := Truncate(total.Div(decimal.NewFromInt(int64(tt.n))))
			for i := 0; i < tt.n-1; i++ {
				assert.True(t, parts[i].Equal(share))
			}
		})
	}
}

func TestSplit_InvalidCount(t *testing.T) {
	assert.Nil(t, Split(decimal.NewFromInt(100), 0))
	assert.Nil(t, Split(decimal.NewFromInt(100), -3))
}

func TestWithinTolerance(t *testing.T) {
	a := decimal.RequireFromString("100.00")

	assert.True(t, WithinTolerance(a, decimal.RequireFromString("100.00")))
	assert.True(t, WithinTolerance(a, decimal.RequireFromString("100.01")))
	assert.True(t, WithinTolerance(a, decimal.RequireFromString("99.99")))
	assert.False(t, WithinTolerance(a, decimal.RequireFromString("100.02")))
	assert.False(t, WithinTolerance(a, decimal.RequireFromString("99.98")))
}
