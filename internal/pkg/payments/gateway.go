package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/quidpay/quidpay/internal/pkg/config"
)

// Intent is the result of creating a payment intent with the processor.
// ExternalID is the correlation key between local and remote state; the
// client secret is consumed by the client-side confirmation step.
type Intent struct {
	ExternalID   string
	ClientSecret string
}

// Gateway is the outbound interface to the payment processor.
type Gateway interface {
	CreateIntent(ctx context.Context, amountInPence int64, currency string, metadata map[string]string) (*Intent, error)
}

// StripeGateway implements Gateway against the Stripe API. The API key is
// injected at construction; nothing here reads ambient state.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a gateway client from the given configuration.
func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{api: api}
}

// CreateIntent creates a payment intent with the processor. No retries are
// attempted; the caller decides what a failure means.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountInPence int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInPence),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			if stripeErr.Type == stripe.ErrorTypeCard {
				return nil, &DeclinedError{Msg: stripeErr.Msg}
			}
			return nil, fmt.Errorf("%w: %s", ErrGateway, stripeErr.Msg)
		}
		return nil, &UnexpectedError{Err: err}
	}

	return &Intent{
		ExternalID:   pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}
