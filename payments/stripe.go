package payments

import (
	"context"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// StripeGateway implements Gateway over the Stripe API. The key is scoped
// to this client; nothing relies on the SDK's package-level configuration.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

func (g *StripeGateway) CreateTransfer(ctx context.Context, amount int64, currency, destination, transferGroup, idempotencyKey string) (string, error) {
	params := &stripe.TransferParams{
		Params:        stripe.Params{Context: ctx, IdempotencyKey: stripe.String(idempotencyKey)},
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(currency),
		Destination:   stripe.String(destination),
		TransferGroup: stripe.String(transferGroup),
	}

	tr, err := g.api.Transfers.New(params)
	if err != nil {
		return "", err
	}
	return tr.ID, nil
}

func intentFromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
}
