package payments

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	intents     map[string]*Intent
	transfers   []fakeTransfer
	transferIDs map[string]string

	createErr   error
	transferErr error
}

type fakeTransfer struct {
	amount        int64
	destination   string
	transferGroup string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		intents:     map[string]*Intent{},
		transferIDs: map[string]string{},
	}
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	intent := &Intent{
		ID:           "pi_" + strconv.Itoa(len(g.intents)+1),
		ClientSecret: "secret_" + strconv.Itoa(len(g.intents)+1),
		Status:       "requires_payment_method",
		Metadata:     metadata,
	}
	g.intents[intent.ID] = intent
	return intent, nil
}

func (g *fakeGateway) GetIntent(_ context.Context, id string) (*Intent, error) {
	intent, ok := g.intents[id]
	if !ok {
		return nil, errors.New("no such intent")
	}
	return intent, nil
}

func (g *fakeGateway) CreateTransfer(_ context.Context, amount int64, _ string, destination, transferGroup, idempotencyKey string) (string, error) {
	if g.transferErr != nil {
		return "", g.transferErr
	}
	if id, ok := g.transferIDs[idempotencyKey]; ok {
		return id, nil
	}
	g.transfers = append(g.transfers, fakeTransfer{amount: amount, destination: destination, transferGroup: transferGroup})
	id := "tr_" + strconv.Itoa(len(g.transfers))
	g.transferIDs[idempotencyKey] = id
	return id, nil
}

type fakeStore struct {
	orders    map[uuid.UUID]*SettlementOrder
	settled   map[uuid.UUID]int
	recordErr error

	// staleSettledReads simulates the window where a settlement is in
	// flight but not yet visible to the settled check.
	staleSettledReads bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:  map[uuid.UUID]*SettlementOrder{},
		settled: map[uuid.UUID]int{},
	}
}

func (s *fakeStore) SettlementOrder(_ context.Context, orderID uuid.UUID) (*SettlementOrder, error) {
	so, ok := s.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return so, nil
}

func (s *fakeStore) AlreadySettled(_ context.Context, orderID uuid.UUID) (bool, error) {
	if s.staleSettledReads {
		return false, nil
	}
	return s.settled[orderID] > 0, nil
}

func (s *fakeStore) RecordSettlement(_ context.Context, orderID uuid.UUID, _ string) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.settled[orderID]++
	return nil
}

func newTestService() (*Service, *fakeGateway, *fakeStore) {
	gateway := newFakeGateway()
	store := newFakeStore()
	svc := NewService(gateway, store, "usd", 20)
	svc.recordRetries = 1
	return svc, gateway, store
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(10000000), MinorUnits(100000))
	assert.Equal(t, int64(1099), MinorUnits(10.999))
	assert.Equal(t, int64(0), MinorUnits(0))
}

func TestSplit(t *testing.T) {
	seller, platform := Split(MinorUnits(100000), 20)
	assert.Equal(t, int64(8000000), seller)
	assert.Equal(t, int64(2000000), platform)

	// Shares always reassemble the total, truncation notwithstanding.
	for _, total := range []int64{0, 1, 99, 101, 12345, 9999999} {
		seller, platform := Split(total, 20)
		assert.Equal(t, total, seller+platform, "total %d", total)
	}
}

func TestCreateIntent(t *testing.T) {
	svc, gateway, store := newTestService()
	orderID := uuid.New()
	store.orders[orderID] = &SettlementOrder{OrderID: orderID, FinalAmount: 100000, SellerAccount: "acct_1"}

	secret, err := svc.CreateIntent(context.Background(), orderID)
	require.NoError(t, err)
	assert.NotEmpty(t, secret)

	require.Len(t, gateway.intents, 1)
	for _, intent := range gateway.intents {
		assert.Equal(t, orderID.String(), intent.Metadata["order_id"])
		assert.Equal(t, "acct_1", intent.Metadata["seller_account"])
		assert.Equal(t, "8000000", intent.Metadata["seller_amount"])
		assert.Equal(t, "2000000", intent.Metadata["platform_amount"])
	}

	// Intent creation is read-only locally.
	assert.Empty(t, store.settled)
}

func TestCreateIntentOrderMissing(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.CreateIntent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCreateIntentSellerNotOnboarded(t *testing.T) {
	svc, gateway, store := newTestService()
	orderID := uuid.New()
	store.orders[orderID] = &SettlementOrder{OrderID: orderID, FinalAmount: 100000}

	_, err := svc.CreateIntent(context.Background(), orderID)
	assert.ErrorIs(t, err, ErrSellerNotOnboarded)
	assert.Empty(t, gateway.intents)
}

func settleableIntent(t *testing.T, svc *Service, gateway *fakeGateway, store *fakeStore) (uuid.UUID, string) {
	t.Helper()
	orderID := uuid.New()
	store.orders[orderID] = &SettlementOrder{OrderID: orderID, FinalAmount: 100000, SellerAccount: "acct_1"}

	_, err := svc.CreateIntent(context.Background(), orderID)
	require.NoError(t, err)

	var intentID string
	for id := range gateway.intents {
		intentID = id
	}
	return orderID, intentID
}

func TestConfirmSettles(t *testing.T) {
	svc, gateway, store := newTestService()
	orderID, intentID := settleableIntent(t, svc, gateway, store)
	gateway.intents[intentID].Status = IntentSucceeded

	settled, err := svc.Confirm(context.Background(), intentID, "confirmation call")
	require.NoError(t, err)
	assert.True(t, settled)

	require.Len(t, gateway.transfers, 1)
	assert.Equal(t, int64(8000000), gateway.transfers[0].amount)
	assert.Equal(t, "acct_1", gateway.transfers[0].destination)
	assert.Equal(t, orderID.String(), gateway.transfers[0].transferGroup)
	assert.Equal(t, 1, store.settled[orderID])
}

func TestConfirmNotSucceededIsNoop(t *testing.T) {
	svc, gateway, store := newTestService()
	orderID, intentID := settleableIntent(t, svc, gateway, store)

	settled, err := svc.Confirm(context.Background(), intentID, "confirmation call")
	require.NoError(t, err)
	assert.False(t, settled)
	assert.Empty(t, gateway.transfers)
	assert.Zero(t, store.settled[orderID])
}

// Replayed webhook deliveries must neither transfer twice nor record a
// second Paid entry.
func TestConfirmReplayIsIdempotent(t *testing.T) {
	svc, gateway, store := newTestService()
	orderID, intentID := settleableIntent(t, svc, gateway, store)
	gateway.intents[intentID].Status = IntentSucceeded

	for i := 0; i < 3; i++ {
		settled, err := svc.Confirm(context.Background(), intentID, "webhook")
		require.NoError(t, err)
		assert.True(t, settled)
	}

	assert.Len(t, gateway.transfers, 1)
	assert.Equal(t, 1, store.settled[orderID])
}

// Two deliveries racing past the settled check must still move money once:
// the gateway collapses them on the per-order idempotency key.
func TestConfirmRacingDeliveriesTransferOnce(t *testing.T) {
	svc, gateway, store := newTestService()
	_, intentID := settleableIntent(t, svc, gateway, store)
	gateway.intents[intentID].Status = IntentSucceeded
	store.staleSettledReads = true

	for i := 0; i < 2; i++ {
		settled, err := svc.Confirm(context.Background(), intentID, "webhook")
		require.NoError(t, err)
		assert.True(t, settled)
	}

	assert.Len(t, gateway.transfers, 1)
}

func TestConfirmGatewayTransferFails(t *testing.T) {
	svc, gateway, store := newTestService()
	orderID, intentID := settleableIntent(t, svc, gateway, store)
	gateway.intents[intentID].Status = IntentSucceeded
	gateway.transferErr = errors.New("gateway down")

	settled, err := svc.Confirm(context.Background(), intentID, "webhook")
	assert.ErrorIs(t, err, ErrGateway)
	assert.False(t, settled)
	assert.Zero(t, store.settled[orderID])
}

func TestConfirmUnrecordedSettlementSurfaces(t *testing.T) {
	svc, gateway, store := newTestService()
	_, intentID := settleableIntent(t, svc, gateway, store)
	gateway.intents[intentID].Status = IntentSucceeded
	store.recordErr = errors.New("db down")

	settled, err := svc.Confirm(context.Background(), intentID, "webhook")
	assert.ErrorIs(t, err, ErrSettlementUnrecorded)
	assert.False(t, settled)
	// The transfer happened; the caller must not treat this as a clean failure.
	assert.Len(t, gateway.transfers, 1)
}
