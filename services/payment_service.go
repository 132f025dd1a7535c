package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shopkart/models"
	"shopkart/repository"
	"shopkart/validators"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// CreateCardTokenRequest is the payload for attaching a card.
type CreateCardTokenRequest struct {
	Email           string `json:"email"`
	PaymentMethodID string `json:"payment_method_id"`
	SaveCard        bool   `json:"save_card"`
}

// SaveCardOutcome records the best-effort local write during card
// creation. The card is attached remotely either way; a failed save is
// reported here so it can be logged without failing the request.
type SaveCardOutcome struct {
	Attempted bool
	Saved     bool
	Err       error
}

// CreateCardTokenResult is the successful outcome of CreateCardToken.
type CreateCardTokenResult struct {
	CustomerID      string
	PaymentMethodID string
	SaveOutcome     SaveCardOutcome
}

// ChargeRequest is the payload for an immediate off-session charge.
type ChargeRequest struct {
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	OrderedItem   string  `json:"ordered_item"`
	TotalPrice    float64 `json:"total_price"`
	CardNumber    string  `json:"card_number"`
}

// ChargeResult is the successful outcome of Charge.
type ChargeResult struct {
	OrderID         uuid.UUID
	CustomerID      string
	PaymentIntentID string
	Amount          float64
}

// UpdateCardRequest is the payload for a partial card update. Only
// non-empty fields are forwarded to the gateway.
type UpdateCardRequest struct {
	CustomerID     string `json:"customer_id"`
	CardID         string `json:"card_id"`
	CardNumber     string `json:"card_number"`
	NameOnCard     string `json:"name_on_card"`
	ExpMonth       string `json:"exp_month"`
	ExpYear        string `json:"exp_year"`
	AddressCity    string `json:"address_city"`
	AddressCountry string `json:"address_country"`
	AddressState   string `json:"address_state"`
	AddressZip     string `json:"address_zip"`
}

// PaymentService sequences gateway calls and local writes for the card
// and charge workflows.
type PaymentService struct {
	gateway   PaymentGateway
	cards     repository.CardRepository
	orders    repository.OrderRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewPaymentService creates the orchestrator. publisher may be nil when
// event publishing is not configured.
func NewPaymentService(
	gateway PaymentGateway,
	cards repository.CardRepository,
	orders repository.OrderRepository,
	publisher EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		gateway:   gateway,
		cards:     cards,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateCardToken attaches a payment method to the customer for the given
// email, creating the customer if needed, and sets it as the default.
// When SaveCard is set, the card summary is also written locally; that
// write is best-effort and never fails the request.
func (s *PaymentService) CreateCardToken(ctx context.Context, userID uuid.UUID, req *CreateCardTokenRequest) (*CreateCardTokenResult, *ServiceError) {
	if req.Email == "" || req.PaymentMethodID == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Email and payment_method_id are required"}
	}

	customer, err := s.gateway.FindOrCreateCustomer(ctx, req.Email, fmt.Sprintf("Customer for %s", userID))
	if err != nil {
		return nil, s.gatewayError(err)
	}

	if err := s.gateway.AttachPaymentMethod(ctx, req.PaymentMethodID, customer.ID); err != nil {
		return nil, s.gatewayError(err)
	}
	// No rollback of the attach if setting the default fails; the caller
	// sees the gateway error and the attach stands.
	if err := s.gateway.SetDefaultPaymentMethod(ctx, customer.ID, req.PaymentMethodID); err != nil {
		return nil, s.gatewayError(err)
	}

	result := &CreateCardTokenResult{
		CustomerID:      customer.ID,
		PaymentMethodID: req.PaymentMethodID,
	}

	if req.SaveCard {
		result.SaveOutcome = s.saveCardLocally(ctx, userID, req.Email, customer.ID, req.PaymentMethodID)
		if result.SaveOutcome.Err != nil {
			// The card is genuinely attached remotely, so the request
			// still succeeds. Local and remote state may diverge here.
			s.logger.Error("failed to save card locally",
				zap.String("user_id", userID.String()),
				zap.String("customer_id", customer.ID),
				zap.Error(result.SaveOutcome.Err))
		}
	}

	return result, nil
}

func (s *PaymentService) saveCardLocally(ctx context.Context, userID uuid.UUID, email, customerID, paymentMethodID string) SaveCardOutcome {
	outcome := SaveCardOutcome{Attempted: true}

	pmCard, err := s.gateway.GetPaymentMethodCard(ctx, paymentMethodID)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	card := &models.StoredCard{
		UserID:     userID,
		Email:      email,
		CustomerID: customerID,
		CardNumber: pmCard.Number,
		ExpMonth:   pmCard.ExpMonth,
		ExpYear:    pmCard.ExpYear,
		CardID:     pmCard.CardID,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Saved = true
	return outcome
}

// Charge confirms an off-session payment intent for an existing customer
// and records the paid order. The order row is written only after the
// gateway confirms the charge; nothing is written on any failure.
func (s *PaymentService) Charge(ctx context.Context, userID uuid.UUID, req *ChargeRequest) (*ChargeResult, *ServiceError) {
	if req.Email == "" || req.PaymentMethod == "" || req.Name == "" || req.Address == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "email, amount, payment_method, name, address and total_price are required"}
	}
	if req.Amount == 0 || req.TotalPrice == 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "email, amount, payment_method, name, address and total_price are required"}
	}
	if err := validators.ValidatePrice(req.Amount); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Amount must be greater than 0"}
	}

	customer, err := s.gateway.FindCustomerByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.gatewayError(err)
	}
	if customer == nil {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Customer not found"}
	}

	orderedItem := req.OrderedItem
	if orderedItem == "" {
		orderedItem = "Not specified"
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, ChargeParams{
		AmountMinor:     int64(req.Amount * 100),
		Currency:        "inr",
		CustomerID:      customer.ID,
		PaymentMethodID: req.PaymentMethod,
		Description:     fmt.Sprintf("Order for %s", req.Name),
		Metadata: map[string]string{
			"user_id":    userID.String(),
			"order_item": orderedItem,
		},
	})
	if err != nil {
		return nil, s.gatewayError(err)
	}

	order := models.Order{
		UserID:      userID,
		Name:        req.Name,
		OrderedItem: orderedItem,
		CardNumber:  req.CardNumber,
		TotalPrice:  req.Amount,
		Address:     req.Address,
	}.MarkPaid(time.Now())

	if err := s.orders.Create(ctx, &order); err != nil {
		// The remote charge already succeeded; surfacing a 500 here at
		// least tells the caller the order record is missing.
		s.logger.Error("charge succeeded but order write failed",
			zap.String("user_id", userID.String()),
			zap.String("payment_intent_id", intent.ID),
			zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "An unexpected error occurred"}
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("payment_intent_id", intent.ID))

	s.publishEvent(ctx, models.PaymentEvent{
		Type:      "payment_succeeded",
		UserID:    userID.String(),
		OrderID:   order.ID.String(),
		Customer:  customer.ID,
		Amount:    req.Amount,
		Currency:  "inr",
		Timestamp: time.Now().UTC(),
	})

	return &ChargeResult{
		OrderID:         order.ID,
		CustomerID:      customer.ID,
		PaymentIntentID: intent.ID,
		Amount:          req.Amount,
	}, nil
}

// RetrieveCard fetches card details from the gateway.
func (s *PaymentService) RetrieveCard(ctx context.Context, customerID, cardID string) (*CardDetails, *ServiceError) {
	if customerID == "" || cardID == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Customer-Id and Card-Id headers are required"}
	}
	details, err := s.gateway.RetrieveCard(ctx, customerID, cardID)
	if err != nil {
		return nil, s.gatewayError(err)
	}
	return details, nil
}

// UpdateCard forwards the present fields to the gateway, then applies the
// same updates to the matching local row when card_number is given. A
// missing local row is a silent no-op: the remote update already
// succeeded and the gateway is authoritative.
func (s *PaymentService) UpdateCard(ctx context.Context, userID uuid.UUID, req *UpdateCardRequest) (*CardDetails, *ServiceError) {
	if req.CustomerID == "" || req.CardID == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "customer_id and card_id are required"}
	}

	update := CardUpdate{
		Name:           req.NameOnCard,
		ExpMonth:       req.ExpMonth,
		ExpYear:        req.ExpYear,
		AddressCity:    req.AddressCity,
		AddressCountry: req.AddressCountry,
		AddressState:   req.AddressState,
		AddressZip:     req.AddressZip,
	}
	if update.Empty() {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "No valid update fields provided"}
	}

	if update.ExpMonth != "" {
		if err := validators.ValidateExpMonth(update.ExpMonth); err != nil {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: err.Error()}
		}
	}
	if update.ExpYear != "" {
		if err := validators.ValidateExpYear(update.ExpYear); err != nil {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: err.Error()}
		}
	}
	if update.AddressZip != "" {
		if err := validators.ValidateZip(update.AddressZip); err != nil {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: err.Error()}
		}
	}

	details, err := s.gateway.UpdateCard(ctx, req.CustomerID, req.CardID, update)
	if err != nil {
		return nil, s.gatewayError(err)
	}

	if req.CardNumber != "" {
		s.updateLocalCard(ctx, userID, req)
	}

	return details, nil
}

func (s *PaymentService) updateLocalCard(ctx context.Context, userID uuid.UUID, req *UpdateCardRequest) {
	card, err := s.cards.FindByCardNumber(ctx, req.CardNumber, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("local card lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return
	}

	if req.NameOnCard != "" {
		card.NameOnCard = req.NameOnCard
	}
	if req.ExpMonth != "" {
		card.ExpMonth = req.ExpMonth
	}
	if req.ExpYear != "" {
		card.ExpYear = req.ExpYear
	}
	if req.AddressCity != "" {
		card.AddressCity = req.AddressCity
	}
	if req.AddressCountry != "" {
		card.AddressCountry = req.AddressCountry
	}
	if req.AddressState != "" {
		card.AddressState = req.AddressState
	}
	if req.AddressZip != "" {
		card.AddressZip = req.AddressZip
	}

	if err := s.cards.Update(ctx, card); err != nil {
		s.logger.Warn("local card update failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// DeleteCard removes the stored card. The remote card deletion and the
// remote customer cleanup are both best-effort: the local row is deleted
// unconditionally after the remote attempt so the user is never left
// with a row they can no longer act on.
func (s *PaymentService) DeleteCard(ctx context.Context, userID uuid.UUID, cardNumber string) *ServiceError {
	if cardNumber == "" {
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: "card_number is required"}
	}

	card, err := s.cards.FindByCardNumber(ctx, cardNumber, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: http.StatusNotFound, Message: "Card not found"}
		}
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "An unexpected error occurred"}
	}

	if err := s.gateway.DeleteCard(ctx, card.CustomerID, card.CardID); err != nil {
		s.logger.Error("failed to delete card at gateway, continuing with local delete",
			zap.String("card_id", card.CardID),
			zap.Error(err))
	}

	if err := s.cards.Delete(ctx, card.ID); err != nil {
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "An unexpected error occurred"}
	}

	// A missing customer is not user-visible damage: the next card-add
	// for this email creates a new one transparently.
	if err := s.gateway.DeleteCustomer(ctx, card.CustomerID); err != nil {
		s.logger.Warn("could not delete customer at gateway",
			zap.String("customer_id", card.CustomerID),
			zap.Error(err))
	}

	s.publishEvent(ctx, models.PaymentEvent{
		Type:      "card_deleted",
		UserID:    userID.String(),
		Customer:  card.CustomerID,
		Timestamp: time.Now().UTC(),
	})

	return nil
}

// ListCards returns the user's locally stored cards.
func (s *PaymentService) ListCards(ctx context.Context, userID uuid.UUID) ([]models.StoredCard, *ServiceError) {
	cards, err := s.cards.FindByUserID(ctx, userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "An unexpected error occurred"}
	}
	return cards, nil
}

func (s *PaymentService) publishEvent(ctx context.Context, event models.PaymentEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPaymentEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish payment event",
			zap.String("event_type", event.Type),
			zap.Error(err))
	}
}

// gatewayError maps GatewayError kinds onto response statuses: card and
// request failures are 400, throttling is 429, connectivity is 500.
func (s *PaymentService) gatewayError(err error) *ServiceError {
	var gerr *GatewayError
	if !errors.As(err, &gerr) {
		s.logger.Error("unexpected gateway failure", zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "An unexpected error occurred"}
	}

	switch gerr.Kind {
	case GatewayErrCardDeclined:
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf("Card error: %s", gerr.Message)}
	case GatewayErrRateLimited:
		return &ServiceError{StatusCode: http.StatusTooManyRequests, Message: gerr.Message}
	case GatewayErrInvalidRequest:
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf("Invalid request: %s", gerr.Message)}
	case GatewayErrNetwork:
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: gerr.Message}
	default:
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf("Payment processing error: %s", gerr.Message)}
	}
}
