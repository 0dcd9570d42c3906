package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trackit-api/internal/domain"
)

// QuantityScale decimales que admite una cantidad; coincide con NUMERIC(18,4).
const QuantityScale = 4

// ValidQuantity indica si la cantidad es positiva y cabe en QuantityScale decimales
// sin redondeo. Los ceros a la derecha no cuentan.
func ValidQuantity(qty decimal.Decimal) bool {
	return qty.IsPositive() && qty.Truncate(QuantityScale).Equal(qty)
}

// ApplyEntry calcula la cantidad resultante de una entrada: actual + cantidad.
func ApplyEntry(current, qty decimal.Decimal) (decimal.Decimal, error) {
	if !ValidQuantity(qty) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return current.Add(qty), nil
}

// ApplyExit calcula la cantidad resultante de una salida: actual - cantidad.
// Devuelve domain.ErrInsufficientStock si el resultado quedaría negativo.
func ApplyExit(current, qty decimal.Decimal) (decimal.Decimal, error) {
	if !ValidQuantity(qty) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if current.LessThan(qty) {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	return current.Sub(qty), nil
}
