// Package payments wraps the stripe payment-intent API behind a small
// interface so the workflow can be exercised without touching the gateway.
package payments

import (
	"context"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

type IntentClient interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type StripeClient struct{}

func NewStripeClient(secretKey string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{}
}

// CreateIntent asks stripe for a single-use payment intent and returns its
// client secret. Nothing is charged at this point, so a retry simply creates
// a fresh intent.
func (s *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
