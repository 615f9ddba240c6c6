package orders

import (
	"github.com/google/uuid"

	"github.com/quikbite/quikbite/models"
)

type CartLine struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
}

type PricedLine struct {
	MenuItemID uuid.UUID
	Name       string
	Quantity   int
	UnitPrice  float64
}

func (l PricedLine) Total() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

type PricedCart struct {
	RestaurantID uuid.UUID
	Lines        []PricedLine
	Subtotal     float64
}

// PriceCart resolves requested cart lines against the currently available
// menu items, snapshotting unit prices. Every line must reference a known,
// available menu item and all items must belong to a single restaurant.
func PriceCart(lines []CartLine, menu []models.MenuItem) (*PricedCart, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	byID := make(map[uuid.UUID]models.MenuItem, len(menu))
	for _, mi := range menu {
		byID[mi.ID] = mi
	}

	cart := &PricedCart{Lines: make([]PricedLine, 0, len(lines))}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		mi, ok := byID[line.MenuItemID]
		if !ok || !mi.IsAvailable {
			return nil, ErrItemUnavailable
		}

		if cart.RestaurantID == uuid.Nil {
			cart.RestaurantID = mi.RestaurantID
		} else if cart.RestaurantID != mi.RestaurantID {
			return nil, ErrCrossRestaurant
		}

		cart.Lines = append(cart.Lines, PricedLine{
			MenuItemID: mi.ID,
			Name:       mi.Name,
			Quantity:   line.Quantity,
			UnitPrice:  mi.Price,
		})
		cart.Subtotal += mi.Price * float64(line.Quantity)
	}

	return cart, nil
}

func ValidOrderType(orderType string) bool {
	return orderType == models.OrderTypePickup || orderType == models.OrderTypeDelivery
}
