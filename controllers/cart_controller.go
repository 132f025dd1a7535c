package controllers

import (
	"net/http"

	"shopkart/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartController handles the cart endpoints. Every successful response is
// the full cart with its derived total.
type CartController struct {
	Cart   *services.CartService
	Logger *zap.Logger
}

func NewCartController(cart *services.CartService, logger *zap.Logger) *CartController {
	return &CartController{Cart: cart, Logger: logger}
}

// GetCart returns the current cart for the caller, creating it lazily.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	cart, svcErr := cc.Cart.GetCart(c.Request.Context(), userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds or increments a cart item.
func (cc *CartController) AddItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	cart, svcErr := cc.Cart.AddItem(c.Request.Context(), userID, &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem deletes an item from the caller's cart by path id.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Cart item not found"})
		return
	}

	cart, svcErr := cc.Cart.RemoveItem(c.Request.Context(), userID, itemID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, cart)
}
