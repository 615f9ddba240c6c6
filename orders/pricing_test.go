package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quikbite/quikbite/models"
)

func menuFixture(restaurantID uuid.UUID) []models.MenuItem {
	return []models.MenuItem{
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), RestaurantID: restaurantID, Name: "Pho Bo", Price: 50000, IsAvailable: true},
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), RestaurantID: restaurantID, Name: "Banh Mi", Price: 25000, IsAvailable: true},
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000003"), RestaurantID: restaurantID, Name: "Spring Rolls", Price: 30000, IsAvailable: true},
	}
}

func TestPriceCart(t *testing.T) {
	restaurantID := uuid.New()
	menu := menuFixture(restaurantID)

	cart, err := PriceCart([]CartLine{
		{MenuItemID: menu[0].ID, Quantity: 2},
		{MenuItemID: menu[2].ID, Quantity: 1},
	}, menu)
	require.NoError(t, err)

	assert.Equal(t, restaurantID, cart.RestaurantID)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 50000.0, cart.Lines[0].UnitPrice)
	assert.Equal(t, 100000.0, cart.Lines[0].Total())
	assert.Equal(t, 130000.0, cart.Subtotal)
}

func TestPriceCartEmpty(t *testing.T) {
	_, err := PriceCart(nil, menuFixture(uuid.New()))
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPriceCartUnknownItem(t *testing.T) {
	menu := menuFixture(uuid.New())
	_, err := PriceCart([]CartLine{{MenuItemID: uuid.New(), Quantity: 1}}, menu)
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestPriceCartUnavailableItem(t *testing.T) {
	menu := menuFixture(uuid.New())
	menu[1].IsAvailable = false
	_, err := PriceCart([]CartLine{{MenuItemID: menu[1].ID, Quantity: 1}}, menu)
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestPriceCartCrossRestaurant(t *testing.T) {
	menu := menuFixture(uuid.New())
	other := models.MenuItem{ID: uuid.New(), RestaurantID: uuid.New(), Name: "Ramen", Price: 60000, IsAvailable: true}
	menu = append(menu, other)

	_, err := PriceCart([]CartLine{
		{MenuItemID: menu[0].ID, Quantity: 1},
		{MenuItemID: other.ID, Quantity: 1},
	}, menu)
	assert.ErrorIs(t, err, ErrCrossRestaurant)
}

func TestPriceCartInvalidQuantity(t *testing.T) {
	menu := menuFixture(uuid.New())
	for _, qty := range []int{0, -3} {
		_, err := PriceCart([]CartLine{{MenuItemID: menu[0].ID, Quantity: qty}}, menu)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestDeliveryFee(t *testing.T) {
	calc := FixedFee{DeliveryFee: 15000}

	assert.Equal(t, 15000.0, calc.Fee(models.OrderTypeDelivery, 0, 0, 0, 0))
	assert.Equal(t, 0.0, calc.Fee(models.OrderTypePickup, 0, 0, 0, 0))
}

// Delivery order totals: subtotal from price snapshots plus the flat fee.
func TestDeliveryOrderTotals(t *testing.T) {
	restaurantID := uuid.New()
	menu := menuFixture(restaurantID)

	cart, err := PriceCart([]CartLine{
		{MenuItemID: menu[0].ID, Quantity: 2}, // 2 x 50000
		{MenuItemID: menu[2].ID, Quantity: 1}, // 1 x 30000
	}, menu)
	require.NoError(t, err)

	fee := FixedFee{DeliveryFee: 15000}.Fee(models.OrderTypeDelivery, 0, 0, 0, 0)
	assert.Equal(t, 130000.0, cart.Subtotal)
	assert.Equal(t, 145000.0, cart.Subtotal+fee)
}

func TestValidOrderType(t *testing.T) {
	assert.True(t, ValidOrderType(models.OrderTypePickup))
	assert.True(t, ValidOrderType(models.OrderTypeDelivery))
	assert.False(t, ValidOrderType("DriveThrough"))
	assert.False(t, ValidOrderType(""))
}
