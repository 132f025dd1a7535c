package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopkart/middleware"
	"shopkart/models"
	"shopkart/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubGateway succeeds on every call unless intentErr is set.
type stubGateway struct {
	intentErr error
}

func (g *stubGateway) FindCustomerByEmail(_ context.Context, email string) (*services.CustomerRef, error) {
	return &services.CustomerRef{ID: "cus_stub", Email: email}, nil
}

func (g *stubGateway) FindOrCreateCustomer(_ context.Context, email, _ string) (*services.CustomerRef, error) {
	return &services.CustomerRef{ID: "cus_stub", Email: email}, nil
}

func (g *stubGateway) AttachPaymentMethod(_ context.Context, _, _ string) error { return nil }

func (g *stubGateway) SetDefaultPaymentMethod(_ context.Context, _, _ string) error { return nil }

func (g *stubGateway) GetPaymentMethodCard(_ context.Context, _ string) (*services.PaymentMethodCard, error) {
	return &services.PaymentMethodCard{CardID: "card_stub", Number: services.PadCardNumber("4242")}, nil
}

func (g *stubGateway) CreatePaymentIntent(_ context.Context, params services.ChargeParams) (*services.IntentRef, error) {
	if g.intentErr != nil {
		return nil, g.intentErr
	}
	return &services.IntentRef{ID: "pi_stub", Amount: params.AmountMinor, Status: "succeeded"}, nil
}

func (g *stubGateway) RetrieveCard(_ context.Context, _, cardID string) (*services.CardDetails, error) {
	return &services.CardDetails{ID: cardID, Last4: "4242"}, nil
}

func (g *stubGateway) UpdateCard(_ context.Context, _, cardID string, update services.CardUpdate) (*services.CardDetails, error) {
	return &services.CardDetails{ID: cardID, Name: update.Name}, nil
}

func (g *stubGateway) DeleteCard(_ context.Context, _, _ string) error { return nil }

func (g *stubGateway) DeleteCustomer(_ context.Context, _ string) error { return nil }

type stubCardRepo struct{ cards []models.StoredCard }

func (r *stubCardRepo) Create(_ context.Context, card *models.StoredCard) error {
	card.ID = uuid.New()
	r.cards = append(r.cards, *card)
	return nil
}

func (r *stubCardRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]models.StoredCard, error) {
	var out []models.StoredCard
	for _, c := range r.cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCardRepo) FindByCardNumber(_ context.Context, cardNumber string, userID uuid.UUID) (*models.StoredCard, error) {
	for i := range r.cards {
		if r.cards[i].CardNumber == cardNumber && r.cards[i].UserID == userID {
			return &r.cards[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCardRepo) Update(_ context.Context, _ *models.StoredCard) error { return nil }

func (r *stubCardRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.cards {
		if r.cards[i].ID == id {
			r.cards = append(r.cards[:i], r.cards[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubOrderRepo struct{ orders []models.Order }

func (r *stubOrderRepo) Create(_ context.Context, order *models.Order) error {
	order.ID = uuid.New()
	r.orders = append(r.orders, *order)
	return nil
}

func (r *stubOrderRepo) FindByUserID(_ context.Context, _ uuid.UUID, _, _ int) ([]models.Order, int64, error) {
	return r.orders, int64(len(r.orders)), nil
}

func (r *stubOrderRepo) FindByIDAndUserID(_ context.Context, _, _ uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrderRepo) Update(_ context.Context, _ *models.Order) error { return nil }

func paymentTestRouter(gw *stubGateway, cards *stubCardRepo, orders *stubOrderRepo, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()
	svc := services.NewPaymentService(gw, cards, orders, nil, logger)
	pc := NewPaymentController(svc, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserKey, userID.String())
		c.Next()
	})
	r.POST("/payments/charge", pc.Charge)
	r.POST("/payments/create-card", pc.CreateCardToken)
	r.POST("/payments/delete-card", pc.DeleteCard)
	r.GET("/payments/cards", pc.ListCards)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestChargeEndpoint_Success(t *testing.T) {
	orders := &stubOrderRepo{}
	r := paymentTestRouter(&stubGateway{}, &stubCardRepo{}, orders, uuid.New())

	w := postJSON(r, "/payments/charge", gin.H{
		"email":          "buyer@example.com",
		"amount":         250.0,
		"payment_method": "pm_stub",
		"name":           "Buyer",
		"address":        "12 Main St, Pune",
		"ordered_item":   "Blue sneakers",
		"total_price":    250.0,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			OrderID         string  `json:"order_id"`
			PaymentIntentID string  `json:"payment_intent_id"`
			Amount          float64 `json:"amount"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pi_stub", resp.Data.PaymentIntentID)
	assert.Equal(t, 250.0, resp.Data.Amount)
	assert.Len(t, orders.orders, 1)
}

func TestChargeEndpoint_CardDeclined(t *testing.T) {
	gw := &stubGateway{intentErr: &services.GatewayError{
		Kind:    services.GatewayErrCardDeclined,
		Message: "Your card was declined.",
	}}
	orders := &stubOrderRepo{}
	r := paymentTestRouter(gw, &stubCardRepo{}, orders, uuid.New())

	w := postJSON(r, "/payments/charge", gin.H{
		"email":          "buyer@example.com",
		"amount":         250.0,
		"payment_method": "pm_stub",
		"name":           "Buyer",
		"address":        "12 Main St, Pune",
		"total_price":    250.0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Card error")
	assert.Empty(t, orders.orders)
}

func TestChargeEndpoint_MissingFields(t *testing.T) {
	r := paymentTestRouter(&stubGateway{}, &stubCardRepo{}, &stubOrderRepo{}, uuid.New())

	w := postJSON(r, "/payments/charge", gin.H{"email": "buyer@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCardEndpoint_SavesCard(t *testing.T) {
	cards := &stubCardRepo{}
	r := paymentTestRouter(&stubGateway{}, cards, &stubOrderRepo{}, uuid.New())

	w := postJSON(r, "/payments/create-card", gin.H{
		"email":             "buyer@example.com",
		"payment_method_id": "pm_stub",
		"save_card":         true,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cus_stub")
	assert.Len(t, cards.cards, 1)
}

func TestDeleteCardEndpoint_NotFound(t *testing.T) {
	r := paymentTestRouter(&stubGateway{}, &stubCardRepo{}, &stubOrderRepo{}, uuid.New())

	w := postJSON(r, "/payments/delete-card", gin.H{"card_number": "0000000000004242"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Card not found")
}

func TestListCardsEndpoint(t *testing.T) {
	userID := uuid.New()
	cards := &stubCardRepo{cards: []models.StoredCard{{
		ID:         uuid.New(),
		UserID:     userID,
		CardNumber: "0000000000004242",
	}}}
	r := paymentTestRouter(&stubGateway{}, cards, &stubOrderRepo{}, userID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/payments/cards", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0000000000004242")
}
