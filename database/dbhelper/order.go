package dbhelper

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/quikbite/quikbite/database"
	"github.com/quikbite/quikbite/models"
)

// CreateOrder persists the whole aggregate: the order row, its items and
// the initial "Created" history entry. Callers run it inside database.Tx so
// a failure on any row leaves nothing behind.
func CreateOrder(tx *sqlx.Tx, order *models.Order, items []models.OrderItem) error {
	err := tx.QueryRow(`
		INSERT INTO orders (customer_id, restaurant_id, order_type, total_amount, shipping_fee,
			commission_percent, final_amount, latest_status, delivery_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		order.CustomerID, order.RestaurantID, order.OrderType, order.TotalAmount, order.ShippingFee,
		order.CommissionPercent, order.FinalAmount, models.StatusCreated, order.DeliveryAddress).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return err
	}
	order.LatestStatus = models.StatusCreated

	for i := range items {
		items[i].OrderID = order.ID
		err = tx.QueryRow(`
			INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			items[i].OrderID, items[i].MenuItemID, items[i].Quantity, items[i].UnitPrice).
			Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		INSERT INTO order_status_history (order_id, status, note)
		VALUES ($1, $2, $3)`,
		order.ID, models.StatusCreated, "Order created")
	return err
}

func GetOrderByID(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := database.QuikBite.Get(&order, `
		SELECT id, customer_id, restaurant_id, order_type, total_amount, shipping_fee,
			commission_percent, final_amount, latest_status, delivery_address, settled_at, created_at
		FROM orders
		WHERE id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderForUpdate locks the order row for the rest of the transaction so
// concurrent status changes on the same order serialize instead of racing.
func GetOrderForUpdate(tx *sqlx.Tx, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := tx.Get(&order, `
		SELECT id, customer_id, restaurant_id, order_type, total_amount, shipping_fee,
			commission_percent, final_amount, latest_status, delivery_address, settled_at, created_at
		FROM orders
		WHERE id = $1
		FOR UPDATE`, orderID)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CurrentFulfilmentStatus is the newest non-Paid history entry. Paid rows
// record settlement, not fulfilment progress, so transition checks skip them.
func CurrentFulfilmentStatus(tx *sqlx.Tx, orderID uuid.UUID) (string, error) {
	var status string
	err := tx.Get(&status, `
		SELECT status FROM order_status_history
		WHERE order_id = $1 AND status <> $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, orderID, models.StatusPaid)
	return fulfilmentStatus(status, err)
}

// An order always gets a Created entry at birth; an empty history still
// reads as Created rather than failing the caller. Any other query error
// goes back up so the surrounding transaction aborts.
func fulfilmentStatus(status string, err error) (string, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return models.StatusCreated, nil
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

// AppendStatus writes a history entry and keeps the denormalized
// latest_status column in step with it.
func AppendStatus(tx *sqlx.Tx, orderID uuid.UUID, status, note string) error {
	_, err := tx.Exec(`
		INSERT INTO order_status_history (order_id, status, note)
		VALUES ($1, $2, $3)`, orderID, status, note)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE orders SET latest_status = $2 WHERE id = $1`, orderID, status)
	return err
}

type OrderSummary struct {
	ID             uuid.UUID `db:"id" json:"id"`
	RestaurantName string    `db:"restaurant_name" json:"restaurant_name"`
	OrderType      string    `db:"order_type" json:"order_type"`
	TotalAmount    float64   `db:"total_amount" json:"total_amount"`
	ShippingFee    float64   `db:"shipping_fee" json:"shipping_fee"`
	FinalAmount    float64   `db:"final_amount" json:"final_amount"`
	LatestStatus   string    `db:"latest_status" json:"latest_status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

func ListOrdersByCustomer(customerID uuid.UUID) ([]OrderSummary, error) {
	var summaries []OrderSummary
	err := database.QuikBite.Select(&summaries, `
		SELECT o.id, r.name AS restaurant_name, o.order_type, o.total_amount, o.shipping_fee,
			o.final_amount, o.latest_status, o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC`, customerID)
	return summaries, err
}

type OrderItemDetail struct {
	MenuItemID uuid.UUID `db:"menu_item_id" json:"menu_item_id"`
	Name       string    `db:"name" json:"name"`
	Quantity   int       `db:"quantity" json:"quantity"`
	UnitPrice  float64   `db:"unit_price" json:"unit_price"`
}

func GetOrderItems(orderID uuid.UUID) ([]OrderItemDetail, error) {
	var items []OrderItemDetail
	err := database.QuikBite.Select(&items, `
		SELECT oi.menu_item_id, mi.name, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	return items, err
}

func GetStatusHistory(orderID uuid.UUID) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	err := database.QuikBite.Select(&history, `
		SELECT id, order_id, status, note, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at DESC, id DESC`, orderID)
	return history, err
}
