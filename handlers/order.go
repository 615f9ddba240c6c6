package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/quikbite/quikbite/database"
	"github.com/quikbite/quikbite/database/dbhelper"
	"github.com/quikbite/quikbite/middlewares"
	"github.com/quikbite/quikbite/models"
	"github.com/quikbite/quikbite/orders"
)

func CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		Items           []orders.CartLine `json:"items"`
		OrderType       string            `json:"order_type"`
		DeliveryAddress string            `json:"delivery_address"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if !orders.ValidOrderType(req.OrderType) {
		http.Error(w, orders.ErrInvalidOrderType.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, orders.ErrEmptyOrder.Error(), http.StatusBadRequest)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, line := range req.Items {
		ids = append(ids, line.MenuItemID)
	}

	menu, err := dbhelper.GetMenuItemsByIDs(ids)
	if err != nil {
		http.Error(w, "failed to resolve menu items", http.StatusInternalServerError)
		return
	}

	cart, err := orders.PriceCart(req.Items, menu)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	restaurant, err := dbhelper.GetRestaurantByID(cart.RestaurantID)
	if err != nil {
		http.Error(w, "failed to fetch restaurant", http.StatusInternalServerError)
		return
	}

	// Destination coordinates come from the delivery address once geocoding
	// exists; the flat-fee calculator ignores them.
	shippingFee := feeCalc.Fee(req.OrderType, restaurant.Latitude, restaurant.Longitude, 0, 0)

	order := models.Order{
		CustomerID:        claims.UserID,
		RestaurantID:      cart.RestaurantID,
		OrderType:         req.OrderType,
		TotalAmount:       cart.Subtotal,
		ShippingFee:       shippingFee,
		CommissionPercent: 0,
		FinalAmount:       cart.Subtotal + shippingFee,
	}
	if req.DeliveryAddress != "" {
		order.DeliveryAddress = &req.DeliveryAddress
	}

	items := make([]models.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, models.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
	}

	txErr := database.Tx(func(tx *sqlx.Tx) error {
		return dbhelper.CreateOrder(tx, &order, items)
	})
	if txErr != nil {
		logrus.Printf("failed to create order, error: %v", txErr)
		http.Error(w, "failed to create order", http.StatusInternalServerError)
		return
	}

	go func(orderID uuid.UUID, amount float64, customerID uuid.UUID) {
		email, err := dbhelper.GetUserEmailByID(customerID)
		if err != nil {
			logrus.Printf("failed to look up customer email, error: %v", err)
			return
		}
		if err := notifier.OrderConfirmation(email, orderID, amount); err != nil {
			logrus.Printf("failed to send order confirmation, error: %v", err)
		}
	}(order.ID, order.FinalAmount, claims.UserID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
		"final_amount": order.FinalAmount,
		"message":      fmt.Sprintf("%s order placed, current status: %s", order.OrderType, models.StatusCreated),
	})
}

func ListOrders(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	summaries, err := dbhelper.ListOrdersByCustomer(claims.UserID)
	if err != nil {
		http.Error(w, "failed to query orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

func GetOrderDetail(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	writeOrderDetail(w, r, claims.UserID)
}

// AdminGetOrderDetail serves the same detail view with the ownership check
// bypassed via the uuid.Nil sentinel.
func AdminGetOrderDetail(w http.ResponseWriter, r *http.Request) {
	writeOrderDetail(w, r, uuid.Nil)
}

func writeOrderDetail(w http.ResponseWriter, r *http.Request, requesterID uuid.UUID) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := dbhelper.GetOrderByID(orderID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to fetch order", http.StatusInternalServerError)
		return
	}

	if err := orders.CheckOwner(order.CustomerID, requesterID); err != nil {
		writeOrderError(w, err)
		return
	}

	restaurant, err := dbhelper.GetRestaurantByID(order.RestaurantID)
	if err != nil {
		http.Error(w, "failed to fetch restaurant", http.StatusInternalServerError)
		return
	}

	items, err := dbhelper.GetOrderItems(orderID)
	if err != nil {
		http.Error(w, "failed to fetch order items", http.StatusInternalServerError)
		return
	}

	history, err := dbhelper.GetStatusHistory(orderID)
	if err != nil {
		http.Error(w, "failed to fetch status history", http.StatusInternalServerError)
		return
	}

	type ItemView struct {
		MenuItemID uuid.UUID `json:"menu_item_id"`
		Name       string    `json:"name"`
		Quantity   int       `json:"quantity"`
		UnitPrice  float64   `json:"unit_price"`
		TotalPrice float64   `json:"total_price"`
	}
	type HistoryView struct {
		Status    string    `json:"status"`
		Note      string    `json:"note"`
		CreatedAt time.Time `json:"created_at"`
	}

	itemViews := make([]ItemView, 0, len(items))
	for _, it := range items {
		itemViews = append(itemViews, ItemView{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.UnitPrice * float64(it.Quantity),
		})
	}

	historyViews := make([]HistoryView, 0, len(history))
	for _, h := range history {
		historyViews = append(historyViews, HistoryView{
			Status:    h.Status,
			Note:      h.Note,
			CreatedAt: h.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"order_id":           order.ID,
		"customer_id":        order.CustomerID,
		"order_type":         order.OrderType,
		"total_amount":       order.TotalAmount,
		"shipping_fee":       order.ShippingFee,
		"final_amount":       order.FinalAmount,
		"latest_status":      order.LatestStatus,
		"restaurant_name":    restaurant.Name,
		"restaurant_address": restaurant.Address,
		"items":              itemViews,
		"status_history":     historyViews,
		"created_at":         order.CreatedAt,
	})
}

func CancelOrder(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	txErr := database.Tx(func(tx *sqlx.Tx) error {
		order, err := dbhelper.GetOrderForUpdate(tx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return orders.ErrNotFound
		} else if err != nil {
			return err
		}

		if err := orders.CheckOwner(order.CustomerID, claims.UserID); err != nil {
			return err
		}
		if err := orders.CanCancel(order.LatestStatus); err != nil {
			return err
		}

		return dbhelper.AppendStatus(tx, orderID, models.StatusCancelled, "Order cancelled by customer")
	})
	if txErr != nil {
		writeOrderError(w, txErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Order cancelled",
	})
}

func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	type request struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if !orders.ValidStatus(req.Status) {
		http.Error(w, fmt.Sprintf("unknown order status: %q", req.Status), http.StatusBadRequest)
		return
	}

	note := req.Note
	if note == "" {
		note = orders.DefaultStatusNote(req.Status)
	}

	txErr := database.Tx(func(tx *sqlx.Tx) error {
		_, err := dbhelper.GetOrderForUpdate(tx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return orders.ErrNotFound
		} else if err != nil {
			return err
		}

		current, err := dbhelper.CurrentFulfilmentStatus(tx, orderID)
		if err != nil {
			return err
		}

		if err := orders.CheckTransition(current, req.Status); err != nil {
			return err
		}

		return dbhelper.AppendStatus(tx, orderID, req.Status, note)
	})
	if txErr != nil {
		writeOrderError(w, txErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Order status updated to %s", req.Status),
	})
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orders.ErrNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
	case errors.Is(err, orders.ErrNotOrderOwner):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, orders.ErrInvalidStatus), errors.Is(err, orders.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logrus.Printf("order operation failed, error: %v", err)
		http.Error(w, "order operation failed", http.StatusInternalServerError)
	}
}
