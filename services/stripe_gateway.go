package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
)

// stripeGateway implements PaymentGateway on top of an injected Stripe
// client. The API key lives on the client instance, not in the package
// global stripe.Key.
type stripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a PaymentGateway backed by Stripe.
func NewStripeGateway(secretKey string) PaymentGateway {
	return &stripeGateway{api: client.New(secretKey, nil)}
}

func (g *stripeGateway) FindCustomerByEmail(ctx context.Context, email string) (*CustomerRef, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	iter := g.api.Customers.List(params)
	for iter.Next() {
		c := iter.Customer()
		return &CustomerRef{ID: c.ID, Email: c.Email}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, mapStripeErr(err)
	}
	return nil, nil
}

func (g *stripeGateway) FindOrCreateCustomer(ctx context.Context, email, description string) (*CustomerRef, error) {
	existing, err := g.FindCustomerByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	params := &stripe.CustomerParams{
		Email:       stripe.String(email),
		Description: stripe.String(description),
	}
	params.Context = ctx
	c, err := g.api.Customers.New(params)
	if err != nil {
		return nil, mapStripeErr(err)
	}
	return &CustomerRef{ID: c.ID, Email: c.Email}, nil
}

func (g *stripeGateway) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	params := &stripe.PaymentMethodAttachParams{Customer: stripe.String(customerID)}
	params.Context = ctx
	if _, err := g.api.PaymentMethods.Attach(paymentMethodID, params); err != nil {
		return mapStripeErr(err)
	}
	return nil
}

func (g *stripeGateway) SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	params := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	params.Context = ctx
	if _, err := g.api.Customers.Update(customerID, params); err != nil {
		return mapStripeErr(err)
	}
	return nil
}

func (g *stripeGateway) GetPaymentMethodCard(ctx context.Context, paymentMethodID string) (*PaymentMethodCard, error) {
	params := &stripe.PaymentMethodParams{}
	params.Context = ctx
	pm, err := g.api.PaymentMethods.Get(paymentMethodID, params)
	if err != nil {
		return nil, mapStripeErr(err)
	}
	if pm.Card == nil {
		return nil, &GatewayError{Kind: GatewayErrInvalidRequest, Message: "Payment method has no card"}
	}
	return &PaymentMethodCard{
		CardID:   pm.ID,
		Number:   PadCardNumber(pm.Card.Last4),
		Brand:    string(pm.Card.Brand),
		ExpMonth: fmt.Sprintf("%02d", pm.Card.ExpMonth),
		ExpYear:  fmt.Sprintf("%d", pm.Card.ExpYear),
	}, nil
}

func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, p ChargeParams) (*IntentRef, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(p.AmountMinor),
		Currency:      stripe.String(p.Currency),
		Customer:      stripe.String(p.CustomerID),
		PaymentMethod: stripe.String(p.PaymentMethodID),
		OffSession:    stripe.Bool(true),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(p.Description),
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, mapStripeErr(err)
	}
	return &IntentRef{ID: pi.ID, Amount: pi.Amount, Status: string(pi.Status)}, nil
}

func (g *stripeGateway) RetrieveCard(ctx context.Context, customerID, cardID string) (*CardDetails, error) {
	params := &stripe.CardParams{Customer: stripe.String(customerID)}
	params.Context = ctx
	card, err := g.api.Cards.Get(cardID, params)
	if err != nil {
		return nil, mapStripeErr(err)
	}
	return cardDetails(card), nil
}

func (g *stripeGateway) UpdateCard(ctx context.Context, customerID, cardID string, update CardUpdate) (*CardDetails, error) {
	params := &stripe.CardParams{Customer: stripe.String(customerID)}
	params.Context = ctx
	if update.Name != "" {
		params.Name = stripe.String(update.Name)
	}
	if update.ExpMonth != "" {
		params.ExpMonth = stripe.String(update.ExpMonth)
	}
	if update.ExpYear != "" {
		params.ExpYear = stripe.String(update.ExpYear)
	}
	if update.AddressCity != "" {
		params.AddressCity = stripe.String(update.AddressCity)
	}
	if update.AddressCountry != "" {
		params.AddressCountry = stripe.String(update.AddressCountry)
	}
	if update.AddressState != "" {
		params.AddressState = stripe.String(update.AddressState)
	}
	if update.AddressZip != "" {
		params.AddressZip = stripe.String(update.AddressZip)
	}

	card, err := g.api.Cards.Update(cardID, params)
	if err != nil {
		return nil, mapStripeErr(err)
	}
	return cardDetails(card), nil
}

func (g *stripeGateway) DeleteCard(ctx context.Context, customerID, cardID string) error {
	params := &stripe.CardParams{Customer: stripe.String(customerID)}
	params.Context = ctx
	if _, err := g.api.Cards.Del(cardID, params); err != nil {
		return mapStripeErr(err)
	}
	return nil
}

func (g *stripeGateway) DeleteCustomer(ctx context.Context, customerID string) error {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	if _, err := g.api.Customers.Del(customerID, params); err != nil {
		return mapStripeErr(err)
	}
	return nil
}

func cardDetails(card *stripe.Card) *CardDetails {
	return &CardDetails{
		ID:             card.ID,
		Name:           card.Name,
		Brand:          string(card.Brand),
		Last4:          card.Last4,
		ExpMonth:       fmt.Sprintf("%02d", card.ExpMonth),
		ExpYear:        fmt.Sprintf("%d", card.ExpYear),
		AddressCity:    card.AddressCity,
		AddressCountry: card.AddressCountry,
		AddressState:   card.AddressState,
		AddressZip:     card.AddressZip,
	}
}

// PadCardNumber extends a last-four suffix to the 16-digit display form
// stored locally. The gateway never exposes the full number.
func PadCardNumber(last4 string) string {
	if len(last4) >= 16 {
		return last4
	}
	return strings.Repeat("0", 16-len(last4)) + last4
}

// mapStripeErr normalizes Stripe failures into GatewayError kinds: card
// failures, throttling, malformed requests, connectivity, and a generic
// bucket for the rest.
func mapStripeErr(err error) error {
	var serr *stripe.Error
	if !errors.As(err, &serr) {
		return &GatewayError{Kind: GatewayErrNetwork, Message: "Network error. Please try again later."}
	}

	msg := serr.Msg
	if msg == "" {
		msg = "Payment processing error"
	}

	switch {
	case serr.Type == stripe.ErrorTypeCard:
		return &GatewayError{Kind: GatewayErrCardDeclined, Message: msg}
	case serr.HTTPStatusCode == http.StatusTooManyRequests:
		return &GatewayError{Kind: GatewayErrRateLimited, Message: "Too many requests. Please try again later."}
	case serr.Type == stripe.ErrorTypeInvalidRequest:
		return &GatewayError{Kind: GatewayErrInvalidRequest, Message: msg}
	default:
		return &GatewayError{Kind: GatewayErrGeneric, Message: msg}
	}
}
