package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	Pincode string `json:"pincode" validate:"required,numeric"`
}

type order struct {
	Email    string  `json:"email" validate:"required,email"`
	Quantity int     `json:"quantity" validate:"lte=10000"`
	Address  address `json:"shippingAddress"`
}

func TestDetailsKeyedByJSONPath(t *testing.T) {
	err := New().Struct(order{Email: "nope", Quantity: 10001, Address: address{Pincode: "50A"}})
	details, ok := Details(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"email":                   "must be a valid email",
		"quantity":                "must be at most 10000",
		"shippingAddress.pincode": "must contain only digits",
	}, details)
}

func TestDetailsIgnoresOtherErrors(t *testing.T) {
	_, ok := Details(errors.New("boom"))
	assert.False(t, ok)
	_, ok = Details(nil)
	assert.False(t, ok)
}
