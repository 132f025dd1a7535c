package controllers

import (
	"net/http"
	"strconv"

	"shopkart/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderController handles order reads and the delivered transition.
type OrderController struct {
	Orders *services.OrderService
	Logger *zap.Logger
}

func NewOrderController(orders *services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{Orders: orders, Logger: logger}
}

// ListOrders returns the caller's orders, newest first.
func (oc *OrderController) ListOrders(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, total, svcErr := oc.Orders.ListOrders(c.Request.Context(), userID, page, limit)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

// GetOrder returns a single order owned by the caller.
func (oc *OrderController) GetOrder(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
		return
	}

	order, svcErr := oc.Orders.GetOrder(c.Request.Context(), userID, orderID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}

// MarkDelivered advances an order to the delivered state.
func (oc *OrderController) MarkDelivered(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
		return
	}

	order, svcErr := oc.Orders.MarkDelivered(c.Request.Context(), userID, orderID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"detail": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}
