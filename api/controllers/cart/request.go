package cart

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/angelmondragon/organics-storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/organics-storefront/pkg/errors"
)

type addItemRequest struct {
	ProductID       string           `json:"productId"`
	UnitPrice       *decimal.Decimal `json:"unitPrice" validate:"required"`
	DiscountPercent int              `json:"discountPercent" validate:"min=0,max=100"`
	Quantity        *int             `json:"quantity,omitempty" validate:"omitempty,lte=10000"`
	Attributes      map[string]any   `json:"attributes,omitempty"`
}

type addCatalogItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity,omitempty" validate:"omitempty,lte=10000"`
}

func (p addCatalogItemRequest) quantity() int {
	if p.Quantity == nil {
		return 1
	}
	return *p.Quantity
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=10000"`
}

// toProduct maps the payload onto the store's product. The store itself
// rejects a missing product id and defaults the quantity.
func (p addItemRequest) toProduct() (cartsvc.Product, int, error) {
	if p.UnitPrice.IsNegative() {
		return cartsvc.Product{}, 0, pkgerrors.Newf(pkgerrors.CodeInvalidArgument, "unit price %s must not be negative", p.UnitPrice.String()).
			WithDetails(map[string]any{"field": "unitPrice"})
	}
	quantity := 1
	if p.Quantity != nil {
		quantity = *p.Quantity
	}
	return cartsvc.Product{
		ID:              p.ProductID,
		UnitPrice:       *p.UnitPrice,
		DiscountPercent: p.DiscountPercent,
		Attributes:      p.Attributes,
	}, quantity, nil
}
