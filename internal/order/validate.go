package order

import (
	"fmt"
	"math"
)

// ValidateQuantity checks a proposed order quantity against the
// product's bounds. Checks short-circuit in a fixed order: positivity,
// then the minimum order quantity, then available stock. The returned
// message is empty when the quantity is acceptable; otherwise it names
// the first violated bound, word for word what the order form shows.
func ValidateQuantity(quantity, minimumOrderQuantity, availableQuantity int) string {
	if quantity <= 0 {
		return "Enter a valid quantity"
	}
	if quantity < minimumOrderQuantity {
		return fmt.Sprintf("Minimum order is %d", minimumOrderQuantity)
	}
	if quantity > availableQuantity {
		return fmt.Sprintf("Cannot order more than available (%d)", availableQuantity)
	}
	return ""
}

// Total derives the order total from the quantity and the unit price
// snapshot, rounded to two decimal places. The total is never stored
// independently of its inputs.
func Total(quantity int, unitPrice float64) float64 {
	return math.Round(float64(quantity)*unitPrice*100) / 100
}
