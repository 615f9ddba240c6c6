package orders

import "errors"

var (
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrItemUnavailable   = errors.New("menu item unavailable")
	ErrInvalidQuantity   = errors.New("item quantity must be at least 1")
	ErrCrossRestaurant   = errors.New("all items must be from the same restaurant")
	ErrInvalidOrderType  = errors.New("order type must be Pickup or Delivery")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrNotFound          = errors.New("order not found")
	ErrNotOrderOwner     = errors.New("order does not belong to this customer")
)
