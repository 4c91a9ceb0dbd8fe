package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// MaxMinorUnits is the largest amount the processor accepts for a single intent.
const MaxMinorUnits = 99999999

var (
	ErrInvalidAmount    = errors.New("invalid price")
	ErrPaymentsDisabled = errors.New("payment processor is not configured")
)

// ToMinorUnits converts a decimal price (JSON number or numeric string) to
// integer cents. Anything that rounds below one cent or above MaxMinorUnits is rejected.
func ToMinorUnits(price interface{}) (int64, error) {
	var amount float64
	switch v := price.(type) {
	case float64:
		amount = v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, v)
		}
		amount = f
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, price)
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	cents := math.Round(amount * 100)
	if cents < 1 || cents > MaxMinorUnits {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return int64(cents), nil
}

// IntentPage is the first page of payment intents, in the processor's list envelope.
type IntentPage struct {
	Object  string                  `json:"object"`
	Data    []*stripe.PaymentIntent `json:"data"`
	HasMore bool                    `json:"has_more"`
	URL     string                  `json:"url"`
}

type PaymentService struct {
	api      *client.API
	currency string
}

// NewPaymentService returns a service bound to the Stripe secret key. An empty
// key yields a service whose calls fail with ErrPaymentsDisabled.
func NewPaymentService(secretKey, currency string) *PaymentService {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	p := &PaymentService{currency: currency}
	if secretKey != "" {
		p.api = &client.API{}
		p.api.Init(secretKey, nil)
	}
	return p
}

// CreateIntent creates a payment intent for amount cents and returns its client secret.
func (p *PaymentService) CreateIntent(ctx context.Context, amount int64) (string, error) {
	if p.api == nil {
		return "", ErrPaymentsDisabled
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(p.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}

// ListIntents returns the processor's default first page, unfiltered.
func (p *PaymentService) ListIntents(ctx context.Context) (*IntentPage, error) {
	if p.api == nil {
		return nil, ErrPaymentsDisabled
	}
	params := &stripe.PaymentIntentListParams{}
	params.Context = ctx
	params.Single = true

	page := &IntentPage{Object: "list", Data: make([]*stripe.PaymentIntent, 0), URL: "/v1/payment_intents"}
	it := p.api.PaymentIntents.List(params)
	for it.Next() {
		page.Data = append(page.Data, it.PaymentIntent())
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list payment intents: %w", err)
	}
	if meta := it.Meta(); meta != nil {
		page.HasMore = meta.HasMore
	}
	return page, nil
}
