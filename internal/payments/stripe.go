package payments

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/config"
)

const paymentMethodCard = "card"

// StripeGateway creates card payment intents through the Stripe API.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, nil)}
}

// NewGateway returns a Stripe gateway, or DisabledGateway when no secret
// key is configured.
func NewGateway(cfg *config.PaymentConfig) Gateway {
	if cfg.SecretKey == "" {
		log.Printf("[payments] STRIPE_SECRET_KEY not set, payment intents are disabled")
		return DisabledGateway{}
	}
	return NewStripeGateway(cfg.SecretKey)
}

func (g *StripeGateway) CreateIntent(ctx context.Context, req IntentRequest) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{paymentMethodCard}),
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
