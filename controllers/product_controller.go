package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"shopkart/models"
	"shopkart/repository"
	"shopkart/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductController serves the catalogue reads behind carts and orders,
// with a Redis read-through cache.
type ProductController struct {
	Repo   repository.ProductRepository
	Cache  *CacheManager
	Logger *zap.Logger
}

func NewProductController(repo repository.ProductRepository, cache *CacheManager, logger *zap.Logger) *ProductController {
	return &ProductController{Repo: repo, Cache: cache, Logger: logger}
}

// ListProducts returns a page of products.
func (pc *ProductController) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	// The cache only covers the default first page.
	cacheable := page == 1 && limit == 20
	if cacheable && pc.Cache != nil {
		if products := pc.Cache.GetProductList(c.Request.Context()); products != nil {
			c.JSON(http.StatusOK, gin.H{"products": products, "cached": true})
			return
		}
	}

	products, total, err := pc.Repo.FindAll(c.Request.Context(), page, limit)
	if err != nil {
		pc.Logger.Error("failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list products"})
		return
	}

	if cacheable && pc.Cache != nil {
		pc.Cache.SetProductList(c.Request.Context(), products)
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": total})
}

// GetProduct returns a single product.
func (pc *ProductController) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}

	if pc.Cache != nil {
		if product := pc.Cache.GetProduct(c.Request.Context(), productID.String()); product != nil {
			c.JSON(http.StatusOK, product)
			return
		}
	}

	product, err := pc.Repo.FindByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
			return
		}
		pc.Logger.Error("failed to get product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to get product"})
		return
	}

	if pc.Cache != nil {
		pc.Cache.SetProduct(c.Request.Context(), product)
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a catalogue entry.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var in struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required"`
		Stock       int     `json:"stock"`
		Image       string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}
	if err := validators.ValidatePrice(in.Price); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Image:       in.Image,
	}
	if err := pc.Repo.Create(c.Request.Context(), &product); err != nil {
		pc.Logger.Error("failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create product"})
		return
	}

	if pc.Cache != nil {
		pc.Cache.Invalidate(c.Request.Context(), product.ID.String())
	}
	c.JSON(http.StatusOK, product)
}
