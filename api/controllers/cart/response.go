package cart

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/angelmondragon/organics-storefront/internal/cart"
	"github.com/angelmondragon/organics-storefront/pkg/pricing"
)

type lineView struct {
	ProductID       string          `json:"productId"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent int             `json:"discountPercent"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	Quantity        int             `json:"quantity"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
	Attributes      map[string]any  `json:"attributes,omitempty"`
}

type cartView struct {
	Items     []lineView      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Summary   pricing.Summary `json:"summary"`
}

// snapshotView renders a snapshot returned by a mutation.
func snapshotView(lines []cartsvc.Line, deliveryFee decimal.Decimal) cartView {
	return newCartView(lines, cartsvc.SubtotalOf(lines, pricing.DiscountedPrice), deliveryFee)
}

type countView struct {
	Count int `json:"count"`
}

// newCartView renders lines next to a subtotal computed by the cart store's
// pricing rule.
func newCartView(lines []cartsvc.Line, subtotal, deliveryFee decimal.Decimal) cartView {
	items := make([]lineView, 0, len(lines))
	count := 0
	for _, line := range lines {
		items = append(items, lineView{
			ProductID:       line.ProductID,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			DiscountedPrice: pricing.DiscountedPrice(line.UnitPrice, line.DiscountPercent),
			Quantity:        line.Quantity,
			LineTotal:       pricing.LineTotal(pricing.DiscountedPrice, line.UnitPrice, line.DiscountPercent, line.Quantity),
			Attributes:      line.Attributes,
		})
		count += line.Quantity
	}
	return cartView{
		Items:     items,
		ItemCount: count,
		Summary:   pricing.Summarize(subtotal, deliveryFee),
	}
}
