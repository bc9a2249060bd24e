package booking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// MoneyFromFloat rounds half away from zero to the cent.
func MoneyFromFloat(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, v)
	}
	return Money{cents: int64(math.Round(v * 100))}, nil
}

// ParseMoney accepts "85", "85.5" and "85.50". More than two decimals is rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > 2 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	frac += strings.Repeat("0", 2-len(frac))

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || f < 0 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Float64() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) Times(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

// String renders a plain two-decimal amount. Currency symbols are a presentation concern.
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
