package payments

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SettlementOrder is the slice of an order the settlement flow needs.
type SettlementOrder struct {
	OrderID       uuid.UUID
	FinalAmount   float64
	SellerAccount string
}

// Store is the persistence boundary of the settlement flow. RecordSettlement
// must be atomic and must fail or no-op when the order is already settled.
type Store interface {
	SettlementOrder(ctx context.Context, orderID uuid.UUID) (*SettlementOrder, error)
	AlreadySettled(ctx context.Context, orderID uuid.UUID) (bool, error)
	RecordSettlement(ctx context.Context, orderID uuid.UUID, note string) error
}

// Service drives the two-phase settlement flow: the platform collects the
// full amount through a payment intent, then transfers the seller share
// once the intent succeeds.
type Service struct {
	Gateway            Gateway
	Store              Store
	Currency           string
	PlatformFeePercent float64
	GatewayTimeout     time.Duration

	recordRetries int
}

func NewService(gateway Gateway, store Store, currency string, platformFeePercent float64) *Service {
	return &Service{
		Gateway:            gateway,
		Store:              store,
		Currency:           currency,
		PlatformFeePercent: platformFeePercent,
		GatewayTimeout:     10 * time.Second,
		recordRetries:      3,
	}
}

// CreateIntent creates a payment intent for the order's full final amount,
// tagging it with everything Confirm needs later. No local state changes.
func (s *Service) CreateIntent(ctx context.Context, orderID uuid.UUID) (clientSecret string, err error) {
	so, err := s.Store.SettlementOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if so.SellerAccount == "" {
		return "", ErrSellerNotOnboarded
	}

	totalMinor := MinorUnits(so.FinalAmount)
	sellerMinor, platformMinor := Split(totalMinor, s.PlatformFeePercent)

	metadata := map[string]string{
		"order_id":        so.OrderID.String(),
		"seller_account":  so.SellerAccount,
		"seller_amount":   strconv.FormatInt(sellerMinor, 10),
		"platform_amount": strconv.FormatInt(platformMinor, 10),
	}

	gwCtx, cancel := context.WithTimeout(ctx, s.GatewayTimeout)
	defer cancel()

	intent, err := s.Gateway.CreateIntent(gwCtx, totalMinor, s.Currency, metadata)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return intent.ClientSecret, nil
}

// Confirm settles a succeeded payment intent: transfer the seller share,
// then record a Paid history entry. It is the single entry point shared by
// the client confirmation call and the gateway webhook, and is safe to call
// repeatedly for the same intent — a settled order is a no-op.
func (s *Service) Confirm(ctx context.Context, intentID, via string) (bool, error) {
	gwCtx, cancel := context.WithTimeout(ctx, s.GatewayTimeout)
	intent, err := s.Gateway.GetIntent(gwCtx, intentID)
	cancel()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if intent.Status != IntentSucceeded {
		logrus.Printf("payment intent %s not succeeded (status %s), nothing to settle", intentID, intent.Status)
		return false, nil
	}

	orderID, err := uuid.Parse(intent.Metadata["order_id"])
	if err != nil {
		return false, fmt.Errorf("intent %s carries no valid order id: %w", intentID, err)
	}
	sellerAccount := intent.Metadata["seller_account"]
	sellerMinor, err := strconv.ParseInt(intent.Metadata["seller_amount"], 10, 64)
	if err != nil {
		return false, fmt.Errorf("intent %s carries no valid seller amount: %w", intentID, err)
	}

	// Duplicate webhook deliveries and confirm/webhook races both land
	// here; bail out before moving money twice.
	settled, err := s.Store.AlreadySettled(ctx, orderID)
	if err != nil {
		return false, err
	}
	if settled {
		logrus.Printf("order %s already settled, skipping intent %s", orderID, intentID)
		return true, nil
	}

	// The per-order idempotency key is the backstop for concurrent
	// deliveries that both got past the settled check: the processor
	// collapses them into a single transfer.
	gwCtx, cancel = context.WithTimeout(ctx, s.GatewayTimeout)
	_, err = s.Gateway.CreateTransfer(gwCtx, sellerMinor, s.Currency, sellerAccount, orderID.String(), "settle-"+orderID.String())
	cancel()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	note := fmt.Sprintf("Payment received via %s", via)
	if err := s.recordWithRetry(ctx, orderID, note); err != nil {
		// The transfer went through but the order does not say so. Never
		// report success here; this needs manual reconciliation.
		logrus.WithError(err).Errorf("order %s: seller transfer succeeded but settlement was not recorded", orderID)
		return false, fmt.Errorf("%w: order %s", ErrSettlementUnrecorded, orderID)
	}
	return true, nil
}

func (s *Service) recordWithRetry(ctx context.Context, orderID uuid.UUID, note string) error {
	var err error
	for attempt := 0; attempt < s.recordRetries; attempt++ {
		if err = s.Store.RecordSettlement(ctx, orderID, note); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 100 * time.Millisecond):
		}
	}
	return err
}
