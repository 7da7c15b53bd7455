package storefrontapi

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/organics-storefront/internal/cart"
	"github.com/angelmondragon/organics-storefront/pkg/types"
)

// Product is a catalog entry as served by the remote API.
type Product struct {
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
	Image    string          `json:"image,omitempty"`
	// Quantity is the pack size label ("500", "1"); the API sends either a
	// number or a string.
	Quantity any    `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Category string `json:"category,omitempty"`
}

// CartProduct converts a catalog entry into the payload accepted by the cart
// store. Display fields travel as passthrough attributes.
func (p Product) CartProduct() cart.Product {
	attrs := map[string]any{}
	if name := strings.TrimSpace(p.Name); name != "" {
		attrs["name"] = name
	}
	if p.Image != "" {
		attrs["image"] = p.Image
	}
	if p.Quantity != nil {
		attrs["packSize"] = p.Quantity
	}
	if p.Unit != "" {
		attrs["unit"] = p.Unit
	}
	if p.Category != "" {
		attrs["category"] = p.Category
	}
	return cart.Product{
		ID:              strings.TrimSpace(p.ID),
		UnitPrice:       p.Price,
		DiscountPercent: int(p.Discount.Round(0).IntPart()),
		Attributes:      attrs,
	}
}

// OrderItem is one line of a submitted order. Price is the discounted unit
// price.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	Image     string          `json:"image,omitempty"`
}

// OrderRequest is the body of POST /orders/create.
type OrderRequest struct {
	User            types.Customer        `json:"user"`
	Items           []OrderItem           `json:"items"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
}

// Order is the created order echoed back by the API. Fields the API omits are
// left zero.
type Order struct {
	ID            string          `json:"_id"`
	Status        string          `json:"status,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Message       string          `json:"message,omitempty"`
}
