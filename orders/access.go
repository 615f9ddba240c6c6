package orders

import "github.com/google/uuid"

// CheckOwner verifies the requester may act on a customer's order. uuid.Nil
// is the admin sentinel and bypasses the check.
func CheckOwner(customerID, requesterID uuid.UUID) error {
	if requesterID != uuid.Nil && customerID != requesterID {
		return ErrNotOrderOwner
	}
	return nil
}
