package payments

import (
	"context"
	"log"
)

type Service struct {
	gateway  Gateway
	cache    IntentCache
	currency string
}

// NewService builds the payment service. cache may be nil.
func NewService(gateway Gateway, cache IntentCache, currency string) *Service {
	return &Service{gateway: gateway, cache: cache, currency: currency}
}

// CreateIntent converts price to minor units and returns the client secret
// of a new payment intent. A repeated non-empty idempotency key with the
// same amount returns the cached secret without calling the gateway again;
// with a different amount it fails with ErrIdempotencyConflict. Cache
// failures are logged and otherwise ignored.
func (s *Service) CreateIntent(ctx context.Context, price float64, idempotencyKey string) (string, error) {
	amount, err := AmountFromPrice(price)
	if err != nil {
		return "", err
	}

	useCache := s.cache != nil && idempotencyKey != ""
	if useCache {
		cached, ok, err := s.cache.Get(ctx, idempotencyKey)
		switch {
		case err != nil:
			log.Printf("[payments] cache lookup key=%s: %v", idempotencyKey, err)
		case ok && (cached.Amount != amount || cached.Currency != s.currency):
			return "", ErrIdempotencyConflict
		case ok:
			return cached.ClientSecret, nil
		}
	}

	secret, err := s.gateway.CreateIntent(ctx, IntentRequest{
		Amount:         amount,
		Currency:       s.currency,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return "", err
	}

	if useCache {
		intent := CachedIntent{Amount: amount, Currency: s.currency, ClientSecret: secret}
		if err := s.cache.Set(ctx, idempotencyKey, intent); err != nil {
			log.Printf("[payments] cache store key=%s: %v", idempotencyKey, err)
		}
	}
	return secret, nil
}
