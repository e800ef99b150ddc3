package proto

import (
	"fmt"
	"strings"

	"github.com/ericlagergren/decimal"
	"github.com/pkg/errors"
)

// AmountDecimals is the number of decimal places of the native value unit.
const AmountDecimals = 8

const unitsPerCoin = 100_000_000

// Amount is a quantity of native value in base units, 10^-8 of a coin.
type Amount uint64

// ParseAmount converts a decimal coin string like "0.01" into base units.
// More than AmountDecimals fractional digits, negative values and overflows are rejected.
func ParseAmount(s string) (Amount, error) {
	d, ok := decimal.WithContext(decimal.Context128).SetString(strings.TrimSpace(s))
	if !ok || d.IsNaN(0) || d.IsInf(0) {
		return 0, errors.Errorf("invalid amount '%s'", s)
	}
	if d.Sign() < 0 {
		return 0, errors.Errorf("negative amount '%s'", s)
	}
	d.Mul(d, decimal.New(1, -AmountDecimals))
	if !d.IsInt() {
		return 0, errors.Errorf("amount '%s' has more than %d decimal places", s, AmountDecimals)
	}
	v, ok := d.Uint64()
	if !ok {
		return 0, errors.Errorf("amount '%s' is out of range", s)
	}
	return Amount(v), nil
}

// String renders the amount in coins without trailing zeros.
func (a Amount) String() string {
	whole, frac := uint64(a)/unitsPerCoin, uint64(a)%unitsPerCoin
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	return strings.TrimRight(fmt.Sprintf("%d.%08d", whole, frac), "0")
}

// MarshalJSON writes the amount as a decimal coin string to keep full precision.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.Errorf("amount must be a decimal string, got %s", s)
	}
	v, err := ParseAmount(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*a = v
	return nil
}
