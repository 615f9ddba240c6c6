package payments

import (
	"context"
	"errors"
	"math"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrSellerNotOnboarded   = errors.New("seller has no payout account on file")
	ErrGateway              = errors.New("payment gateway request failed")
	ErrSettlementUnrecorded = errors.New("settlement transferred but not recorded")
)

const IntentSucceeded = "succeeded"

// Intent is the gateway-side payment intent in the shape the settlement
// flow needs: its lifecycle status plus the opaque metadata we attached at
// creation time.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	Metadata     map[string]string
}

// Gateway abstracts the payment processor. Amounts are in minor units.
// CreateTransfer must deduplicate by idempotencyKey: repeated calls with the
// same key return the original transfer instead of moving money again.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
	CreateTransfer(ctx context.Context, amount int64, currency, destination, transferGroup, idempotencyKey string) (string, error)
}

// MinorUnits converts a major-unit amount to minor units, truncating.
func MinorUnits(amount float64) int64 {
	return int64(math.Trunc(amount * 100))
}

// Split divides a total into seller and platform shares in minor units.
// The seller share truncates; the platform share takes the remainder so the
// two always sum to the total.
func Split(totalMinor int64, platformFeePercent float64) (sellerMinor, platformMinor int64) {
	sellerMinor = int64(math.Trunc(float64(totalMinor) * (100 - platformFeePercent) / 100))
	platformMinor = totalMinor - sellerMinor
	return sellerMinor, platformMinor
}
