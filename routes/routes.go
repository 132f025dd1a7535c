package routes

import (
	apperrors "shopkart/common/errors"
	"shopkart/controllers"
	"shopkart/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers groups the handlers wired in main.
type Controllers struct {
	Payment *controllers.PaymentController
	Cart    *controllers.CartController
	Address *controllers.AddressController
	Order   *controllers.OrderController
	Product *controllers.ProductController
}

// Register wires all routes onto the engine. Everything except the
// product reads requires an authenticated identity.
func Register(r *gin.Engine, c *Controllers, jwtSecret []byte) {
	r.Use(apperrors.Middleware())
	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	})

	auth := middleware.AuthMiddleware(jwtSecret)

	payments := r.Group("/payments")
	payments.Use(auth, middleware.RateLimitMiddleware())
	{
		payments.GET("/check-token", c.Payment.CheckToken)
		payments.POST("/create-card", c.Payment.CreateCardToken)
		payments.POST("/charge", c.Payment.Charge)
		payments.GET("/card", c.Payment.RetrieveCard)
		payments.POST("/update-card", c.Payment.UpdateCard)
		payments.POST("/delete-card", c.Payment.DeleteCard)
		payments.GET("/cards", c.Payment.ListCards)
	}

	cart := r.Group("/cart")
	cart.Use(auth)
	{
		cart.GET("", c.Cart.GetCart)
		cart.POST("/add_item", c.Cart.AddItem)
		cart.DELETE("/remove_item/:id", c.Cart.RemoveItem)
	}

	addresses := r.Group("/addresses")
	addresses.Use(auth)
	{
		addresses.GET("", c.Address.ListAddresses)
		addresses.POST("", c.Address.CreateAddress)
		addresses.PUT("/:id", c.Address.UpdateAddress)
		addresses.DELETE("/:id", c.Address.DeleteAddress)
	}

	orders := r.Group("/orders")
	orders.Use(auth)
	{
		orders.GET("", c.Order.ListOrders)
		orders.GET("/:id", c.Order.GetOrder)
		orders.POST("/:id/deliver", c.Order.MarkDelivered)
	}

	products := r.Group("/products")
	{
		products.GET("", c.Product.ListProducts)
		products.GET("/:id", c.Product.GetProduct)
		products.POST("", auth, c.Product.CreateProduct)
	}
}
