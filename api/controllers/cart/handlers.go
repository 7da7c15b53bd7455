package cart

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/organics-storefront/api/responses"
	"github.com/angelmondragon/organics-storefront/api/validators"
	cartsvc "github.com/angelmondragon/organics-storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/organics-storefront/pkg/errors"
	"github.com/angelmondragon/organics-storefront/pkg/logger"
	"github.com/angelmondragon/organics-storefront/pkg/pricing"
	"github.com/angelmondragon/organics-storefront/pkg/storefrontapi"
)

// Store is the subset of the cart store the handlers use.
type Store interface {
	Lines() []cartsvc.Line
	TotalItemCount() int
	Subtotal(priceFn pricing.PriceFunc) decimal.Decimal
	AddItem(ctx context.Context, product cartsvc.Product, quantity int) ([]cartsvc.Line, error)
	RemoveItem(ctx context.Context, productID string) []cartsvc.Line
	SetQuantity(ctx context.Context, productID string, quantity int) []cartsvc.Line
	Clear(ctx context.Context)
}

// ProductFinder resolves a catalog id to the current catalog entry.
type ProductFinder interface {
	FindProduct(ctx context.Context, productID string) (*storefrontapi.Product, error)
}

// CartFetch renders the cart with per-line pricing and the order summary.
func CartFetch(store Store, deliveryFee decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}
		lines := store.Lines()
		responses.WriteSuccess(w, newCartView(lines, store.Subtotal(pricing.DiscountedPrice), deliveryFee))
	}
}

// CartCount returns the badge count shown in navigation.
func CartCount(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}
		responses.WriteSuccess(w, countView{Count: store.TotalItemCount()})
	}
}

// CartAddItem adds a product to the cart, merging with an existing line.
func CartAddItem(store Store, deliveryFee decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, quantity, err := payload.toProduct()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := store.AddItem(r.Context(), product, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, snapshotView(lines, deliveryFee))
	}
}

// CartAddCatalogItem adds a product by catalog id. Price, discount and display
// fields come from the catalog rather than the request.
func CartAddCatalogItem(store Store, catalog ProductFinder, deliveryFee decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart or catalog unavailable"))
			return
		}

		var payload addCatalogItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalog.FindProduct(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := store.AddItem(r.Context(), product.CartProduct(), payload.quantity())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, snapshotView(lines, deliveryFee))
	}
}

// CartSetQuantity sets a line's quantity. Values below one keep the line at one.
func CartSetQuantity(store Store, deliveryFee decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := store.SetQuantity(r.Context(), productID, *payload.Quantity)
		responses.WriteSuccess(w, snapshotView(lines, deliveryFee))
	}
}

// CartRemoveItem drops a line. Unknown ids succeed without changes.
func CartRemoveItem(store Store, deliveryFee decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := store.RemoveItem(r.Context(), productID)
		responses.WriteSuccess(w, snapshotView(lines, deliveryFee))
	}
}

// CartClear empties the cart.
func CartClear(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}
		store.Clear(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

func productIDParam(r *http.Request) (string, error) {
	productID := strings.TrimSpace(chi.URLParam(r, "productId"))
	if productID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInvalidArgument, "product id is required").
			WithDetails(map[string]any{"field": "productId"})
	}
	return productID, nil
}
