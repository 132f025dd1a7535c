package services

import (
	"context"
	"errors"
	"net/http"

	"shopkart/models"
	"shopkart/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// CartResponse is the serialized cart with its derived total.
type CartResponse struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	Items      []models.CartItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
}

// CartService implements the cart operations. The total price is always
// derived from current product prices, never stored.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// GetCart returns the user's cart, creating it on first access.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, *ServiceError) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to get cart"}
	}
	return s.respond(cart), nil
}

// AddItem adds a product to the cart or bumps the quantity of the
// existing row, then returns the full updated cart.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *AddItemRequest) (*CartResponse, *ServiceError) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Quantity must be at least 1"}
	}

	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		}
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add item"}
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add item"}
	}

	item, err := s.carts.FindItem(ctx, cart.ID, req.ProductID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add item"}
	}

	if item != nil {
		item.Quantity += quantity
		if err := s.carts.UpdateItem(ctx, item); err != nil {
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add item"}
		}
	} else {
		if err := s.carts.CreateItem(ctx, &models.CartItem{
			CartID:    cart.ID,
			ProductID: req.ProductID,
			Quantity:  quantity,
		}); err != nil {
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add item"}
		}
	}

	// Re-read so the response carries fresh items and prices.
	cart, err = s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add item"}
	}
	return s.respond(cart), nil
}

// RemoveItem deletes a cart item scoped to the requesting user. An item
// in someone else's cart gets the same not-found response as an item
// that does not exist.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, *ServiceError) {
	if err := s.carts.DeleteItemOwnedBy(ctx, itemID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Cart item not found"}
		}
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to remove item"}
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to remove item"}
	}
	return s.respond(cart), nil
}

func (s *CartService) respond(cart *models.Cart) *CartResponse {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return &CartResponse{
		ID:         cart.ID,
		UserID:     cart.UserID,
		Items:      items,
		TotalPrice: cart.TotalPrice(),
	}
}
