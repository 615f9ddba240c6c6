package orders

import (
	"fmt"

	"github.com/quikbite/quikbite/models"
)

// transitions is the fulfilment state graph. Completed and Cancelled are
// terminal. Paid is recorded by the settlement flow, not through here.
var transitions = map[string][]string{
	models.StatusCreated:   {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing: {models.StatusShipping, models.StatusCancelled},
	models.StatusShipping:  {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
}

func ValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition validates a requested status change against the graph.
func CheckTransition(from, to string) error {
	if !ValidStatus(to) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// CanCancel gates customer-initiated cancellation: only an order still in
// Created may be cancelled. It runs against the raw latest status, so a paid
// or already advanced order is past the gate.
func CanCancel(latestStatus string) error {
	if latestStatus != models.StatusCreated {
		return fmt.Errorf("%w: only orders in Created status can be cancelled", ErrInvalidTransition)
	}
	return nil
}

func DefaultStatusNote(status string) string {
	return fmt.Sprintf("Order status updated to %s", status)
}
