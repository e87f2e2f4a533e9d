package utils

import "github.com/shopspring/decimal"

// RoundToDecimalPlaces rounds half away from zero to the given number of
// decimal places. Monetary amounts in the engine are stored at 2 places.
func RoundToDecimalPlaces(value decimal.Decimal, places int) decimal.Decimal {
	return value.Round(int32(places))
}

// RoundMoney rounds to the engine's standard 2 decimal places.
func RoundMoney(value decimal.Decimal) decimal.Decimal {
	return RoundToDecimalPlaces(value, 2)
}
