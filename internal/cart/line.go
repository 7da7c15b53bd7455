package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Serialized field names. Everything else on a line object is passthrough.
const (
	fieldProductID       = "productId"
	fieldUnitPrice       = "unitPrice"
	fieldDiscountPercent = "discountPercent"
	fieldQuantity        = "quantity"
)

// Product is the payload handed to AddItem by listing and detail views.
// Attributes carries display fields (name, image, unit label, pack size) the
// store never interprets.
type Product struct {
	ID              string
	UnitPrice       decimal.Decimal
	DiscountPercent int
	Attributes      map[string]any
}

// Line is one product in the cart.
type Line struct {
	ProductID       string
	UnitPrice       decimal.Decimal
	DiscountPercent int
	Quantity        int
	Attributes      map[string]any
}

// Attribute returns a passthrough display field as a string, or "" when it is
// absent or not a string.
func (l Line) Attribute(name string) string {
	if v, ok := l.Attributes[name].(string); ok {
		return v
	}
	return ""
}

func (l Line) clone() Line {
	out := l
	if l.Attributes != nil {
		out.Attributes = make(map[string]any, len(l.Attributes))
		for k, v := range l.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

func isReserved(name string) bool {
	switch name {
	case fieldProductID, fieldUnitPrice, fieldDiscountPercent, fieldQuantity:
		return true
	}
	return false
}

// MarshalJSON flattens passthrough attributes next to the known fields.
func (l Line) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(l.Attributes)+4)
	for k, v := range l.Attributes {
		if isReserved(k) {
			continue
		}
		obj[k] = v
	}
	obj[fieldProductID] = l.ProductID
	obj[fieldUnitPrice] = json.Number(l.UnitPrice.String())
	obj[fieldDiscountPercent] = l.DiscountPercent
	obj[fieldQuantity] = l.Quantity
	return json.Marshal(obj)
}

// UnmarshalJSON reads the known fields and keeps every other key as a
// passthrough attribute. Numbers in attributes are kept as json.Number so a
// re-encode reproduces them exactly.
func (l *Line) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Line
	if v, ok := raw[fieldProductID]; ok {
		if err := json.Unmarshal(v, &out.ProductID); err != nil {
			return fmt.Errorf("%s: %w", fieldProductID, err)
		}
	}
	if v, ok := raw[fieldUnitPrice]; ok {
		if err := out.UnitPrice.UnmarshalJSON(v); err != nil {
			return fmt.Errorf("%s: %w", fieldUnitPrice, err)
		}
	}
	if v, ok := raw[fieldDiscountPercent]; ok {
		if err := json.Unmarshal(v, &out.DiscountPercent); err != nil {
			return fmt.Errorf("%s: %w", fieldDiscountPercent, err)
		}
	}
	if v, ok := raw[fieldQuantity]; ok {
		if err := json.Unmarshal(v, &out.Quantity); err != nil {
			return fmt.Errorf("%s: %w", fieldQuantity, err)
		}
	}

	for k, v := range raw {
		if isReserved(k) {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		var val any
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		if out.Attributes == nil {
			out.Attributes = make(map[string]any)
		}
		out.Attributes[k] = val
	}

	*l = out
	return nil
}

func encodeLines(lines []Line) (string, error) {
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeLines parses a persisted cart and restores the store invariants:
// ids are trimmed and lines without one are dropped, quantities are clamped
// into [1, MaxQuantity] and duplicate ids are merged into the first
// occurrence.
func decodeLines(raw string) ([]Line, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var decoded []Line
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(decoded))
	index := make(map[string]int, len(decoded))
	for _, line := range decoded {
		line.ProductID = strings.TrimSpace(line.ProductID)
		if line.ProductID == "" {
			continue
		}
		line.Quantity = clampQuantity(line.Quantity)
		if i, ok := index[line.ProductID]; ok {
			lines[i].Quantity = addQuantity(lines[i].Quantity, line.Quantity)
			continue
		}
		index[line.ProductID] = len(lines)
		lines = append(lines, line)
	}
	return lines, nil
}
