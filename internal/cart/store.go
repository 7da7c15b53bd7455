package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/organics-storefront/pkg/errors"
	"github.com/angelmondragon/organics-storefront/pkg/logger"
	"github.com/angelmondragon/organics-storefront/pkg/metrics"
	"github.com/angelmondragon/organics-storefront/pkg/pricing"
	"github.com/angelmondragon/organics-storefront/pkg/storage"
)

// DefaultKey is the storage key holding the serialized cart.
const DefaultKey = "cartItems"

// MaxQuantity is the per-line ceiling. Merges and updates saturate here.
const MaxQuantity = 10000

const (
	opLoad        = "load"
	opAdd         = "add"
	opRemove      = "remove"
	opSetQuantity = "set_quantity"
	opClear       = "clear"
)

// StoreParams wires a Store. Storage is required; the rest are optional.
type StoreParams struct {
	Storage storage.Storage
	Key     string
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
}

// Store is the cart's single source of truth. Every mutation is written
// through to Storage before it returns. Persistence failures are logged and
// counted but never returned: the in-memory lines stay authoritative.
//
// All methods are safe for concurrent use; each call runs to completion,
// write-through included, before the next one starts.
type Store struct {
	mu      sync.Mutex
	lines   []Line
	storage storage.Storage
	key     string
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// NewStore builds an empty store. Call Load to hydrate it from storage.
func NewStore(params StoreParams) (*Store, error) {
	if params.Storage == nil {
		return nil, errors.New("cart storage required")
	}
	key := strings.TrimSpace(params.Key)
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		storage: params.Storage,
		key:     key,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// Load replaces the in-memory cart with the persisted one. A missing key,
// unreadable storage or a corrupt serialization all yield an empty cart.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	raw, err := s.storage.GetItem(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.durabilityWarning(ctx, opLoad, err, "read cart")
		}
		s.metrics.SetLines(0)
		return
	}

	lines, err := decodeLines(raw)
	if err != nil {
		s.durabilityWarning(ctx, opLoad, err, "decode cart")
		s.metrics.SetLines(0)
		return
	}
	s.lines = lines
	s.metrics.SetLines(len(s.lines))
}

// AddItem adds quantity units of product, merging into an existing line for
// the same product id. Quantities below one count as one and the merged line
// saturates at MaxQuantity. The only error is
// INVALID_ARGUMENT for a product without an id.
func (s *Store) AddItem(ctx context.Context, product Product, quantity int) ([]Line, error) {
	id := strings.TrimSpace(product.ID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "product id is required").
			WithDetails(map[string]any{"field": fieldProductID})
	}
	quantity = clampQuantity(quantity)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.lines[i].Quantity = addQuantity(s.lines[i].Quantity, quantity)
	} else {
		line := Line{
			ProductID:       id,
			UnitPrice:       product.UnitPrice,
			DiscountPercent: product.DiscountPercent,
			Quantity:        quantity,
		}
		if len(product.Attributes) > 0 {
			line.Attributes = make(map[string]any, len(product.Attributes))
			for k, v := range product.Attributes {
				if !isReserved(k) {
					line.Attributes[k] = v
				}
			}
		}
		s.lines = append(s.lines, line)
	}

	s.persist(ctx, opAdd)
	return s.snapshot(), nil
}

// RemoveItem drops the line for productID. Unknown ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
	s.persist(ctx, opRemove)
	return s.snapshot()
}

// SetQuantity sets the line's quantity to quantity clamped into
// [1, MaxQuantity]. Unknown ids are a no-op; a line is never removed by this
// call.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Quantity = clampQuantity(quantity)
	}
	s.persist(ctx, opSetQuantity)
	return s.snapshot()
}

// Clear empties the cart and deletes the persisted key.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.metrics.IncMutation(opClear)
	s.metrics.SetLines(0)
	if err := s.storage.RemoveItem(ctx, s.key); err != nil {
		s.durabilityWarning(ctx, opClear, err, "remove cart")
	}
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// TotalItemCount sums quantities across all lines.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal sums priceFn(unitPrice, discountPercent) * quantity over all
// lines. A nil priceFn uses pricing.DiscountedPrice.
func (s *Store) Subtotal(priceFn pricing.PriceFunc) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SubtotalOf(s.lines, priceFn)
}

// SubtotalOf applies the Subtotal rule to a snapshot returned by Lines or a
// mutation, so callers holding one need not re-read the store.
func SubtotalOf(lines []Line, priceFn pricing.PriceFunc) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(pricing.LineTotal(priceFn, line.UnitPrice, line.DiscountPercent, line.Quantity))
	}
	return total
}

func clampQuantity(quantity int) int {
	return min(max(quantity, 1), MaxQuantity)
}

// addQuantity sums two quantities without leaving [1, MaxQuantity].
func addQuantity(a, b int) int {
	return clampQuantity(clampQuantity(a) + clampQuantity(b))
}

func (s *Store) indexOf(productID string) int {
	productID = strings.TrimSpace(productID)
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []Line {
	out := make([]Line, len(s.lines))
	for i, line := range s.lines {
		out[i] = line.clone()
	}
	return out
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context, op string) {
	s.metrics.IncMutation(op)
	s.metrics.SetLines(len(s.lines))

	raw, err := encodeLines(s.lines)
	if err != nil {
		s.durabilityWarning(ctx, op, err, "encode cart")
		return
	}
	if err := s.storage.SetItem(ctx, s.key, raw); err != nil {
		s.durabilityWarning(ctx, op, err, "write cart")
	}
}

func (s *Store) durabilityWarning(ctx context.Context, op string, err error, msg string) {
	s.metrics.IncDurabilityWarning(op)
	warn := pkgerrors.Wrap(pkgerrors.CodeDurability, err, msg)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"cart_op":     op,
		"storage_key": s.key,
		"error_code":  warn.Code(),
	})
	s.logg.Warn(ctx, "cart.durability_warning", warn)
}
