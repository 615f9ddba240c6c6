package dbhelper

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/quikbite/quikbite/database"
	"github.com/quikbite/quikbite/models"
	"github.com/quikbite/quikbite/payments"
)

// SettlementStore backs the settlement service with the orders schema.
type SettlementStore struct{}

func (SettlementStore) SettlementOrder(_ context.Context, orderID uuid.UUID) (*payments.SettlementOrder, error) {
	var row struct {
		ID            uuid.UUID `db:"id"`
		FinalAmount   float64   `db:"final_amount"`
		PayoutAccount *string   `db:"payout_account_id"`
	}
	err := database.QuikBite.Get(&row, `
		SELECT o.id, o.final_amount, s.payout_account_id
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		JOIN sellers s ON s.id = r.seller_id
		WHERE o.id = $1`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, payments.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	so := &payments.SettlementOrder{OrderID: row.ID, FinalAmount: row.FinalAmount}
	if row.PayoutAccount != nil {
		so.SellerAccount = *row.PayoutAccount
	}
	return so, nil
}

func (SettlementStore) AlreadySettled(_ context.Context, orderID uuid.UUID) (bool, error) {
	var settled bool
	err := database.QuikBite.Get(&settled, `
		SELECT settled_at IS NOT NULL FROM orders WHERE id = $1`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, payments.ErrOrderNotFound
	}
	return settled, err
}

// RecordSettlement appends the Paid history entry and stamps settled_at in
// one transaction with the order row locked. A concurrently settled order
// is a no-op; the partial unique index on Paid entries backstops the check.
func (SettlementStore) RecordSettlement(_ context.Context, orderID uuid.UUID, note string) error {
	return database.Tx(func(tx *sqlx.Tx) error {
		order, err := GetOrderForUpdate(tx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return payments.ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if order.SettledAt != nil {
			return nil
		}

		if err := AppendStatus(tx, orderID, models.StatusPaid, note); err != nil {
			return err
		}
		_, err = tx.Exec(`UPDATE orders SET settled_at = now() WHERE id = $1`, orderID)
		return err
	})
}
