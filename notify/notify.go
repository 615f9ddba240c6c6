package notify

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Sender delivers customer-facing notifications. The mail service lives
// outside this system; LogSender stands in wherever it is not configured.
type Sender interface {
	OrderConfirmation(email string, orderID uuid.UUID, finalAmount float64) error
}

type LogSender struct{}

func (LogSender) OrderConfirmation(email string, orderID uuid.UUID, finalAmount float64) error {
	logrus.Printf("order confirmation for %s: order %s, amount %.2f", email, orderID, finalAmount)
	return nil
}
