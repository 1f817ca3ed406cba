package money

import (
	"fmt"
	"strings"

	"collabflow/internal/pkg/errs"
)

var (
	ErrNegativeAmount   = errs.Validation("amount cannot be negative")
	ErrInvalidCurrency  = errs.Validation("currency must be a 3-letter ISO code")
	ErrCurrencyMismatch = errs.Validation("currency mismatch")
)

// BasisPointsDenominator: 10000 bps == 100%.
const BasisPointsDenominator = 10000

// Money is an amount in minor units (kobo, cents) of a single currency.
type Money struct {
	minor    int64
	currency string
}

func New(minor int64, currency string) (Money, error) {
	if minor < 0 {
		return Money{}, ErrNegativeAmount
	}
	cur, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{minor: minor, currency: cur}, nil
}

// MustNew is for literals in tests and fixtures.
func MustNew(minor int64, currency string) Money {
	m, err := New(minor, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func normalizeCurrency(c string) (string, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if len(c) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return c, nil
}

func (m Money) Minor() int64       { return m.minor }
func (m Money) Currency() string   { return m.currency }
func (m Money) IsZero() bool       { return m.minor == 0 }
func (m Money) Equal(o Money) bool { return m.minor == o.minor && m.currency == o.currency }

func (m Money) LessThan(o Money) bool {
	return m.minor < o.minor
}

func (m Money) Add(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{minor: m.minor + o.minor, currency: m.currency}, nil
}

func (m Money) Sub(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, ErrCurrencyMismatch
	}
	if o.minor > m.minor {
		return Money{}, ErrNegativeAmount
	}
	return Money{minor: m.minor - o.minor, currency: m.currency}, nil
}

// Share returns bps/10000 of m, rounded half up. The whole part is divided
// before multiplying so any amount that fits in int64 stays in range.
func (m Money) Share(bps int) Money {
	whole, rem := m.minor/BasisPointsDenominator, m.minor%BasisPointsDenominator
	v := whole*int64(bps) + (rem*int64(bps)+BasisPointsDenominator/2)/BasisPointsDenominator
	return Money{minor: v, currency: m.currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.minor, m.currency)
}
