package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/organics-storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/organics-storefront/pkg/errors"
	"github.com/angelmondragon/organics-storefront/pkg/logger"
	"github.com/angelmondragon/organics-storefront/pkg/pricing"
	"github.com/angelmondragon/organics-storefront/pkg/storefrontapi"
	"github.com/angelmondragon/organics-storefront/pkg/types"
	"github.com/angelmondragon/organics-storefront/pkg/validation"
)

// PaymentCOD is cash on delivery, the only method accepted today.
const PaymentCOD = "COD"

const onlinePaymentsUnavailable = "online payments are currently unavailable, please choose cash on delivery"

type cartStore interface {
	Lines() []cart.Line
	TotalItemCount() int
	Subtotal(priceFn pricing.PriceFunc) decimal.Decimal
	Clear(ctx context.Context)
}

type orderSubmitter interface {
	CreateOrder(ctx context.Context, order storefrontapi.OrderRequest, idempotencyKey string) (*storefrontapi.Order, error)
}

// Service prices the cart and turns it into a remote order.
type Service interface {
	Quote() Quote
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Result, error)
}

// Quote is the order summary for the current cart.
type Quote struct {
	ItemCount int             `json:"itemCount"`
	Summary   pricing.Summary `json:"summary"`
}

// PlaceOrderInput carries what the checkout form collects. A blank
// PaymentMethod means cash on delivery; a blank IdempotencyKey is generated.
type PlaceOrderInput struct {
	Customer        types.Customer        `json:"customer"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	IdempotencyKey  string                `json:"idempotencyKey"`
}

// Result describes a placed order.
type Result struct {
	Order          *storefrontapi.Order `json:"order"`
	IdempotencyKey string               `json:"idempotencyKey"`
	PaymentMethod  string               `json:"paymentMethod"`
	Summary        pricing.Summary      `json:"summary"`
}

// Params wires a checkout Service.
type Params struct {
	Cart           cartStore
	Orders         orderSubmitter
	DeliveryFee    decimal.Decimal
	PaymentMethods []string
	Logger         *logger.Logger
}

type service struct {
	cart        cartStore
	orders      orderSubmitter
	deliveryFee decimal.Decimal
	accepted    map[string]struct{}
	logg        *logger.Logger
	validate    *validator.Validate
}

// NewService builds the checkout service. With no PaymentMethods configured
// only cash on delivery is accepted.
func NewService(params Params) (Service, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	if params.DeliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}

	accepted := map[string]struct{}{}
	for _, method := range params.PaymentMethods {
		if m := normalizeMethod(method); m != "" {
			accepted[m] = struct{}{}
		}
	}
	if len(accepted) == 0 {
		accepted[PaymentCOD] = struct{}{}
	}

	return &service{
		cart:        params.Cart,
		orders:      params.Orders,
		deliveryFee: params.DeliveryFee,
		accepted:    accepted,
		logg:        params.Logger,
		validate:    validation.New(),
	}, nil
}

func (s *service) Quote() Quote {
	return Quote{
		ItemCount: s.cart.TotalItemCount(),
		Summary:   pricing.Summarize(s.cart.Subtotal(pricing.DiscountedPrice), s.deliveryFee),
	}
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Result, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	input.ShippingAddress = input.ShippingAddress.Trimmed()
	input.Customer.Email = strings.TrimSpace(input.Customer.Email)
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	method := normalizeMethod(input.PaymentMethod)
	if method == "" {
		method = PaymentCOD
	}
	if _, ok := s.accepted[method]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, onlinePaymentsUnavailable).
			WithDetails(map[string]any{"paymentMethod": input.PaymentMethod})
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}

	// Price the snapshot being submitted, not whatever the cart holds now.
	summary := pricing.Summarize(cart.SubtotalOf(lines, pricing.DiscountedPrice), s.deliveryFee)
	request := storefrontapi.OrderRequest{
		User:            input.Customer,
		Items:           orderItems(lines),
		TotalAmount:     summary.Subtotal,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   method,
	}

	order, err := s.orders.CreateOrder(ctx, request, key)
	if err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit order")
		}
		s.warn(ctx, key, err)
		return nil, err
	}

	s.cart.Clear(ctx)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id":        order.ID,
		"idempotency_key": key,
		"items":           len(request.Items),
		"total_amount":    request.TotalAmount.String(),
	})
	s.logg.Info(logCtx, "checkout.order_placed")

	return &Result{
		Order:          order,
		IdempotencyKey: key,
		PaymentMethod:  method,
		Summary:        summary,
	}, nil
}

func (s *service) warn(ctx context.Context, key string, err error) {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"idempotency_key": key,
		"retryable":       pkgerrors.Retryable(err),
	})
	s.logg.Warn(ctx, "checkout.order_failed", err)
}

func orderItems(lines []cart.Line) []storefrontapi.OrderItem {
	items := make([]storefrontapi.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, storefrontapi.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Attribute("name"),
			Price:     pricing.DiscountedPrice(line.UnitPrice, line.DiscountPercent),
			Qty:       line.Quantity,
			Image:     line.Attribute("image"),
		})
	}
	return items
}

func normalizeMethod(method string) string {
	return strings.ToUpper(strings.TrimSpace(method))
}

// validationError reports failed fields by their JSON path, for example
// "shippingAddress.pincode".
func validationError(err error) error {
	details, ok := validation.Details(err)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}
	message := "validation failed"
	for field := range details {
		if strings.HasPrefix(field, "shippingAddress.") {
			message = "please provide your complete shipping address"
			break
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(details)
}
