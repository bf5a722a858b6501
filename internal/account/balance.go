package account

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Balance is an exact decimal amount. It keeps the scale it was written with,
// so "12.50" is stored, transported and rendered as "12.50".
type Balance struct {
	decimal.Decimal
}

func NewBalance(d decimal.Decimal) Balance {
	return Balance{Decimal: d}
}

// ParseBalance parses an exact decimal string. Empty input is zero.
func ParseBalance(s string) (Balance, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Balance{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Balance{}, ErrInvalidBalance
	}
	return Balance{Decimal: d}, nil
}

// String renders the amount without trimming trailing zeros.
func (b Balance) String() string {
	if exp := b.Exponent(); exp < 0 {
		return b.StringFixed(-exp)
	}
	return b.Decimal.String()
}

func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	return b.Decimal.UnmarshalJSON(data)
}

// Value sends the scale-preserving string to the database driver.
func (b Balance) Value() (driver.Value, error) {
	return b.String(), nil
}

func (b *Balance) Scan(value interface{}) error {
	return b.Decimal.Scan(value)
}
