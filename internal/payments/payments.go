// Package payments creates payment intents for checkout.
package payments

import (
	"context"
	"errors"
	"math"
)

var (
	ErrInvalidPrice    = errors.New("price must be a positive number")
	ErrGatewayDisabled = errors.New("payment gateway is not configured")

	// ErrIdempotencyConflict means the idempotency key was already used for
	// a different amount or currency.
	ErrIdempotencyConflict = errors.New("idempotency key reused with different parameters")
)

// IntentRequest describes a payment intent. Amount is in minor units.
type IntentRequest struct {
	Amount         int64
	Currency       string
	IdempotencyKey string
}

// Gateway creates a payment intent and returns its client secret.
type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (string, error)
}

// DisabledGateway is used when no processor key is configured.
type DisabledGateway struct{}

func (DisabledGateway) CreateIntent(context.Context, IntentRequest) (string, error) {
	return "", ErrGatewayDisabled
}

// AmountFromPrice converts a major-unit price to minor units, rounding half
// away from zero.
func AmountFromPrice(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidPrice
	}
	amount := int64(math.Round(price * 100))
	if amount <= 0 {
		return 0, ErrInvalidPrice
	}
	return amount, nil
}
