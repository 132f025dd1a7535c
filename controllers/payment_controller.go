package controllers

import (
	"net/http"

	"shopkart/middleware"
	"shopkart/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentController handles the card and charge endpoints.
type PaymentController struct {
	Payments *services.PaymentService
	Logger   *zap.Logger
}

func NewPaymentController(payments *services.PaymentService, logger *zap.Logger) *PaymentController {
	return &PaymentController{Payments: payments, Logger: logger}
}

// CheckToken confirms the caller's token is valid.
func (pc *PaymentController) CheckToken(c *gin.Context) {
	userID := middleware.GetUserID(c)
	c.JSON(http.StatusOK, gin.H{"detail": "Token is valid", "user_id": userID})
}

// CreateCardToken attaches a payment method to the Stripe customer and
// optionally saves the card locally.
func (pc *PaymentController) CreateCardToken(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.CreateCardTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	result, svcErr := pc.Payments.CreateCardToken(c.Request.Context(), userID, &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer_id":       result.CustomerID,
		"payment_method_id": result.PaymentMethodID,
		"message":           "Card added successfully",
	})
}

// Charge processes an off-session payment and records the paid order.
func (pc *PaymentController) Charge(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	result, svcErr := pc.Payments.Charge(c.Request.Context(), userID, &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"order_id":          result.OrderID,
			"customer_id":       result.CustomerID,
			"payment_intent_id": result.PaymentIntentID,
			"amount":            result.Amount,
			"message":           "Payment successful",
		},
	})
}

// RetrieveCard fetches a gateway card by the Customer-Id and Card-Id
// headers.
func (pc *PaymentController) RetrieveCard(c *gin.Context) {
	customerID := c.GetHeader("Customer-Id")
	cardID := c.GetHeader("Card-Id")

	details, svcErr := pc.Payments.RetrieveCard(c.Request.Context(), customerID, cardID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, details)
}

// UpdateCard forwards a partial card update to the gateway and mirrors it
// locally when possible.
func (pc *PaymentController) UpdateCard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	details, svcErr := pc.Payments.UpdateCard(c.Request.Context(), userID, &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detail": "Card updated successfully",
		"data":   gin.H{"updated_card": details},
	})
}

// DeleteCard removes a stored card and best-effort cleans up the remote
// side.
func (pc *PaymentController) DeleteCard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req struct {
		CardNumber string `json:"card_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	if svcErr := pc.Payments.DeleteCard(c.Request.Context(), userID, req.CardNumber); svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Card deleted successfully"})
}

// ListCards returns the caller's saved cards.
func (pc *PaymentController) ListCards(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	cards, svcErr := pc.Payments.ListCards(c.Request.Context(), userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// requireUser parses the authenticated user ID out of the context.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	raw := middleware.GetUserID(c)
	userID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}
