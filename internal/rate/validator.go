package rate

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxAmountLength   = 64
	maxAmountExponent = 32
)

var (
	ErrCodeRequired     = errors.New("currency code is required")
	ErrCodeMalformed    = errors.New("currency code must be three latin letters")
	ErrAmountMalformed  = errors.New("amount must be a number")
	ErrAmountOutOfRange = errors.New("amount is out of range")
)

// NormalizeCode trims and upper-cases a user supplied currency code and checks its shape.
// Whether the code is actually cached is decided by the lookup, not here.
func NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", ErrCodeRequired
	}
	if len(code) != 3 {
		return "", ErrCodeMalformed
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ErrCodeMalformed
		}
	}
	return code, nil
}

// ParseAmount parses a user supplied amount. Length and exponent are bounded:
// rendering 1e10000000 would take tens of megabytes.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, ErrAmountMalformed
	}
	if len(raw) > maxAmountLength {
		return decimal.Decimal{}, ErrAmountOutOfRange
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, ErrAmountMalformed
	}
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Decimal{}, ErrAmountOutOfRange
	}
	return amount, nil
}
