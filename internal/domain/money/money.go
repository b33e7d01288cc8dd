// Package money holds amounts in integer minor units so billing never
// touches floating point.
package money

import (
	"fmt"

	"parking-core/internal/pkg/errs"
)

var ErrNegativeAmount = errs.NewKind("amount cannot be negative", errs.ErrInvalidInput)

type Money struct {
	cents int64
}

func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// NewNonNegative rejects negative amounts; rates and payments use it.
func NewNonNegative(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func Zero() Money {
	return Money{}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) Mul(n int64) Money {
	return Money{cents: m.cents * n}
}

func (m Money) Min(other Money) Money {
	if other.cents < m.cents {
		return other
	}
	return m
}

// Distance is the absolute difference between two amounts.
func (m Money) Distance(other Money) Money {
	d := m.cents - other.cents
	if d < 0 {
		d = -d
	}
	return Money{cents: d}
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
