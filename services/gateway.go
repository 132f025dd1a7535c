package services

import "context"

// GatewayErrorKind classifies remote payment failures into the kinds the
// handlers map onto HTTP statuses.
type GatewayErrorKind string

const (
	GatewayErrCardDeclined   GatewayErrorKind = "card_declined"
	GatewayErrRateLimited    GatewayErrorKind = "rate_limited"
	GatewayErrInvalidRequest GatewayErrorKind = "invalid_request"
	GatewayErrNetwork        GatewayErrorKind = "network_error"
	GatewayErrGeneric        GatewayErrorKind = "generic"
)

// GatewayError is a normalized remote payment failure.
type GatewayError struct {
	Kind    GatewayErrorKind
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

// CustomerRef identifies a customer object owned by the gateway.
type CustomerRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// PaymentMethodCard is the card summary behind a payment method.
// Number is the 16-digit display form, last four digits real and the
// rest zero-padded; the gateway never exposes the full number.
type PaymentMethodCard struct {
	CardID   string `json:"card_id"`
	Number   string `json:"number"`
	Brand    string `json:"brand"`
	ExpMonth string `json:"exp_month"`
	ExpYear  string `json:"exp_year"`
}

// CardDetails mirrors a gateway-side card object.
type CardDetails struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Last4          string `json:"last4"`
	ExpMonth       string `json:"exp_month"`
	ExpYear        string `json:"exp_year"`
	AddressCity    string `json:"address_city"`
	AddressCountry string `json:"address_country"`
	AddressState   string `json:"address_state"`
	AddressZip     string `json:"address_zip"`
}

// CardUpdate carries the partial card mutation. Empty fields are left
// unchanged on the remote side.
type CardUpdate struct {
	Name           string
	ExpMonth       string
	ExpYear        string
	AddressCity    string
	AddressCountry string
	AddressState   string
	AddressZip     string
}

// Empty reports whether the update carries no fields at all.
func (u CardUpdate) Empty() bool {
	return u == CardUpdate{}
}

// ChargeParams describes an immediate off-session charge.
type ChargeParams struct {
	AmountMinor     int64
	Currency        string
	CustomerID      string
	PaymentMethodID string
	Description     string
	Metadata        map[string]string
}

// IntentRef identifies a confirmed payment intent.
type IntentRef struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

// PaymentGateway wraps the external payment processor. Implementations are
// constructed explicitly and injected into the orchestrator; there is no
// package-global client state, so tests can substitute a fake.
type PaymentGateway interface {
	// FindCustomerByEmail returns nil, nil when no customer matches.
	FindCustomerByEmail(ctx context.Context, email string) (*CustomerRef, error)
	// FindOrCreateCustomer lists by email and returns the first match, or
	// creates a new customer. Not atomic: two concurrent calls for a brand
	// new email can create two remote customers.
	FindOrCreateCustomer(ctx context.Context, email, description string) (*CustomerRef, error)
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error
	SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error
	GetPaymentMethodCard(ctx context.Context, paymentMethodID string) (*PaymentMethodCard, error)
	// CreatePaymentIntent creates and immediately confirms an off-session
	// charge in minor currency units.
	CreatePaymentIntent(ctx context.Context, params ChargeParams) (*IntentRef, error)
	RetrieveCard(ctx context.Context, customerID, cardID string) (*CardDetails, error)
	UpdateCard(ctx context.Context, customerID, cardID string, update CardUpdate) (*CardDetails, error)
	DeleteCard(ctx context.Context, customerID, cardID string) error
	DeleteCustomer(ctx context.Context, customerID string) error
}
