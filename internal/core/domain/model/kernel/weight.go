package kernel

import (
	"fmt"

	"ordersapi/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Weight is a non-negative item or package weight in the store's weight unit.
// Arithmetic is decimal so totals such as 2.0 + 3.5×2 compare exactly.
type Weight struct {
	value decimal.Decimal
}

// ZeroWeight is the additive identity used when accumulating shipment totals.
var ZeroWeight = Weight{value: decimal.Zero}

func NewWeight(value decimal.Decimal) (Weight, error) {
	if value.IsNegative() {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is negative", value))
	}
	return Weight{value: value}, nil
}

// MustWeight builds a Weight from a literal. It panics on negative input.
func MustWeight(value string) Weight {
	w, err := NewWeight(decimal.RequireFromString(value))
	if err != nil {
		panic(err)
	}
	return w
}

// Times returns the weight of quantity units.
func (w Weight) Times(quantity int) Weight {
	return Weight{value: w.value.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (w Weight) Add(other Weight) Weight {
	return Weight{value: w.value.Add(other.value)}
}

func (w Weight) Decimal() decimal.Decimal {
	return w.value
}

func (w Weight) IsEqual(other Weight) bool {
	return w.value.Equal(other.value)
}

func (w Weight) String() string {
	return w.value.String()
}
