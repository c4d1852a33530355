package money

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/littlelemonco/littlelemon-backend/pkg/errors"
)

// MaxPrice mirrors the numeric(6,2) price columns: four integer digits.
var MaxPrice = decimal.NewFromInt(10000)

// Parse reads a price from its wire form. The string form keeps clients from
// sending binary floats for money.
func Parse(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price must be a decimal number")
	}
	if err := ValidatePrice(value); err != nil {
		return decimal.Zero, err
	}
	return value, nil
}

// ValidatePrice enforces the bounds shared by menu item prices and cart math.
func ValidatePrice(value decimal.Decimal) error {
	if value.IsNegative() || value.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if value.GreaterThanOrEqual(MaxPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "price exceeds the supported maximum")
	}
	if value.Exponent() < -2 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price supports at most two decimal places")
	}
	return nil
}

// Sum adds amounts without intermediate rounding.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, value := range values {
		total = total.Add(value)
	}
	return total
}

// Line multiplies a unit price by a quantity.
func Line(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
