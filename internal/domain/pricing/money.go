package pricing

import (
	"servicemarket/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errs.New("amount cannot be negative")

// Money is a fixed-point currency value with exactly two decimal digits.
// Rounding is half-up and applied at construction, so every Money that
// leaves this package is already normalized.
type Money struct {
	amount decimal.Decimal
}

// NewMoney rounds half-up to two decimals. Rounding happens per field, not
// only on the final sum, so itemized amounts never drift from their total.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d.Round(2)}
}

func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.Wrap(err, "parse money")
	}
	if d.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return NewMoney(d), nil
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders with exactly two decimals, e.g. "600.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return errs.Wrap(err, "unmarshal money")
	}
	m.amount = d.Round(2)
	return nil
}
