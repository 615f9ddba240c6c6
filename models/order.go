package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderTypePickup   = "Pickup"
	OrderTypeDelivery = "Delivery"
)

const (
	StatusCreated   = "Created"
	StatusPreparing = "Preparing"
	StatusShipping  = "Shipping"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusPaid      = "Paid"
)

type Order struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	CustomerID        uuid.UUID  `db:"customer_id" json:"customer_id"`
	RestaurantID      uuid.UUID  `db:"restaurant_id" json:"restaurant_id"`
	OrderType         string     `db:"order_type" json:"order_type"`
	TotalAmount       float64    `db:"total_amount" json:"total_amount"`
	ShippingFee       float64    `db:"shipping_fee" json:"shipping_fee"`
	CommissionPercent float64    `db:"commission_percent" json:"commission_percent"`
	FinalAmount       float64    `db:"final_amount" json:"final_amount"`
	LatestStatus      string     `db:"latest_status" json:"latest_status"`
	DeliveryAddress   *string    `db:"delivery_address" json:"delivery_address,omitempty"`
	SettledAt         *time.Time `db:"settled_at" json:"settled_at,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}

type OrderItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OrderID    uuid.UUID `db:"order_id" json:"order_id"`
	MenuItemID uuid.UUID `db:"menu_item_id" json:"menu_item_id"`
	Quantity   int       `db:"quantity" json:"quantity"`
	UnitPrice  float64   `db:"unit_price" json:"unit_price"`
}

// TotalPrice is the derived line total; unit price is a snapshot taken at
// order time and never tracks later menu price changes.
func (oi OrderItem) TotalPrice() float64 {
	return oi.UnitPrice * float64(oi.Quantity)
}

type OrderStatusHistory struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OrderID   uuid.UUID `db:"order_id" json:"order_id"`
	Status    string    `db:"status" json:"status"`
	Note      string    `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
