package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		in   string
		want OrderStatus
		ok   bool
	}{
		{"Pending", StatusPending, true},
		{"pending", StatusPending, true},
		{"SHIPPED", StatusShipped, true},
		{"DeLiVeReD", StatusDelivered, true},
		{"cancelled", StatusCancelled, true},
		{"processing", StatusProcessing, true},
		{"teleported", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseOrderStatus(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestProductEnumValidity(t *testing.T) {
	assert.True(t, CategoryClothes.Valid())
	assert.True(t, CategoryAccessories.Valid())
	assert.False(t, ProductCategory("Gadgets").Valid())
	assert.False(t, ProductCategory("clothes").Valid(), "categories are case sensitive")

	assert.True(t, SizeMedium.Valid())
	assert.False(t, ProductSize("XXL").Valid())
}
