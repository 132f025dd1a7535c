package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shopkart/models"
	"shopkart/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService exposes order reads and the forward-only status
// transitions.
type OrderService struct {
	orders repository.OrderRepository
	logger *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, *ServiceError) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := s.orders.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("failed to list orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to list orders"}
	}
	return orders, total, nil
}

// GetOrder returns a single order owned by the user.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Order not found"}
		}
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to get order"}
	}
	return order, nil
}

// MarkDelivered advances a paid order to delivered. The transition is
// one-way; an already delivered order is left untouched.
func (s *OrderService) MarkDelivered(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, svcErr := s.GetOrder(ctx, userID, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	if order.IsDelivered {
		return order, nil
	}

	updated := order.MarkDelivered(time.Now())
	if err := s.orders.Update(ctx, &updated); err != nil {
		s.logger.Error("failed to mark order delivered", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update order"}
	}
	return &updated, nil
}
