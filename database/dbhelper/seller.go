package dbhelper

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/quikbite/quikbite/database"
	"github.com/quikbite/quikbite/models"
)

func CreateSeller(tx *sqlx.Tx, userID uuid.UUID, displayName string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO sellers (user_id, display_name) VALUES ($1, $2) RETURNING id`,
		userID, displayName).Scan(&id)
	return id, err
}

func GetSellerByUserID(userID uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	err := database.QuikBite.Get(&seller, `
		SELECT id, user_id, display_name, payout_account_id, created_at, archived_at
		FROM sellers
		WHERE user_id = $1 AND archived_at IS NULL`, userID)
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

func ListSellers() ([]models.Seller, error) {
	var sellers []models.Seller
	err := database.QuikBite.Select(&sellers, `
		SELECT id, user_id, display_name, payout_account_id, created_at, archived_at
		FROM sellers
		ORDER BY created_at DESC`)
	return sellers, err
}

// SetPayoutAccount records the processor account produced by seller
// onboarding; settlement refuses orders for sellers without one.
func SetPayoutAccount(sellerID uuid.UUID, payoutAccountID string) error {
	_, err := database.QuikBite.Exec(`
		UPDATE sellers SET payout_account_id = $2 WHERE id = $1 AND archived_at IS NULL`,
		sellerID, payoutAccountID)
	return err
}

func ArchiveSeller(sellerID uuid.UUID) error {
	_, err := database.QuikBite.Exec(`
		UPDATE sellers SET archived_at = now() WHERE id = $1 AND archived_at IS NULL`, sellerID)
	return err
}
