// Package pricing holds the storefront's single discount rule and the order
// summary arithmetic shared by the cart page and checkout.
package pricing

import "github.com/shopspring/decimal"

// DefaultDeliveryFee is the flat fee added to non-empty orders.
const DefaultDeliveryFee int64 = 40

var hundred = decimal.NewFromInt(100)

// PriceFunc derives the effective unit price from a list price and a discount
// percentage.
type PriceFunc func(unitPrice decimal.Decimal, discountPercent int) decimal.Decimal

// DiscountedPrice returns round(unitPrice - unitPrice*discountPercent/100) in
// whole currency units. Percentages outside [0,100] are clamped.
func DiscountedPrice(unitPrice decimal.Decimal, discountPercent int) decimal.Decimal {
	pct := ClampPercent(discountPercent)
	off := unitPrice.Mul(decimal.NewFromInt(int64(pct))).Div(hundred)
	return unitPrice.Sub(off).Round(0)
}

// ClampPercent bounds a discount percentage to [0,100].
func ClampPercent(pct int) int {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// LineTotal multiplies the effective unit price by qty.
func LineTotal(priceFn PriceFunc, unitPrice decimal.Decimal, discountPercent, qty int) decimal.Decimal {
	if priceFn == nil {
		priceFn = DiscountedPrice
	}
	return priceFn(unitPrice, discountPercent).Mul(decimal.NewFromInt(int64(qty)))
}

// Summary is the order summary block shown next to the cart.
type Summary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// Summarize adds the delivery fee to a positive subtotal. An empty or zero
// subtotal yields a zero total.
func Summarize(subtotal, deliveryFee decimal.Decimal) Summary {
	total := decimal.Zero
	if subtotal.IsPositive() {
		total = subtotal.Add(deliveryFee)
	}
	return Summary{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Total:       total,
	}
}
