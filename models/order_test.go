package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderItemTotalPrice(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: 25000}
	assert.Equal(t, 75000.0, item.TotalPrice())
}
