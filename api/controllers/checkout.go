package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/organics-storefront/api/responses"
	"github.com/angelmondragon/organics-storefront/api/validators"
	checkoutsvc "github.com/angelmondragon/organics-storefront/internal/checkout"
	pkgerrors "github.com/angelmondragon/organics-storefront/pkg/errors"
	"github.com/angelmondragon/organics-storefront/pkg/logger"
	"github.com/angelmondragon/organics-storefront/pkg/types"
)

const idempotencyHeader = "Idempotency-Key"

// CheckoutQuote returns the order summary for the current cart.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Quote())
	}
}

// Checkout places a cash-on-delivery order for the current cart.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.PlaceOrder(r.Context(), checkoutsvc.PlaceOrderInput{
			Customer:        payload.Customer,
			ShippingAddress: payload.ShippingAddress,
			PaymentMethod:   payload.PaymentMethod,
			IdempotencyKey:  strings.TrimSpace(r.Header.Get(idempotencyHeader)),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type checkoutRequest struct {
	Customer        types.Customer        `json:"customer"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod,omitempty"`
}
