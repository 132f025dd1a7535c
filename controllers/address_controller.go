package controllers

import (
	"errors"
	"net/http"

	"shopkart/models"
	"shopkart/repository"
	"shopkart/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddressController handles billing address CRUD. Addresses have a
// lifecycle independent of stored cards.
type AddressController struct {
	Repo   repository.AddressRepository
	Logger *zap.Logger
}

func NewAddressController(repo repository.AddressRepository, logger *zap.Logger) *AddressController {
	return &AddressController{Repo: repo, Logger: logger}
}

type addressInput struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	HouseNo     string `json:"house_no" binding:"required"`
	Landmark    string `json:"landmark"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	PinCode     string `json:"pin_code" binding:"required"`
}

func (in *addressInput) validate() error {
	if err := validators.ValidatePhoneNumber(in.PhoneNumber); err != nil {
		return err
	}
	return validators.ValidatePinCode(in.PinCode)
}

// ListAddresses returns the caller's billing addresses.
func (ac *AddressController) ListAddresses(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	addrs, err := ac.Repo.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		ac.Logger.Error("failed to list addresses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list addresses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addrs})
}

// CreateAddress creates a new billing address for the caller.
func (ac *AddressController) CreateAddress(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var in addressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}
	if err := in.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	addr := models.BillingAddress{
		UserID:      userID,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		HouseNo:     in.HouseNo,
		Landmark:    in.Landmark,
		City:        in.City,
		State:       in.State,
		PinCode:     in.PinCode,
	}
	if err := ac.Repo.Create(c.Request.Context(), &addr); err != nil {
		ac.Logger.Error("failed to create address", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address created successfully", "address": addr})
}

// UpdateAddress replaces a billing address owned by the caller.
func (ac *AddressController) UpdateAddress(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	addrID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Address not found"})
		return
	}

	var in addressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}
	if err := in.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	addr, err := ac.Repo.FindByIDAndUserID(c.Request.Context(), addrID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Address not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update address"})
		return
	}

	addr.Name = in.Name
	addr.PhoneNumber = in.PhoneNumber
	addr.HouseNo = in.HouseNo
	addr.Landmark = in.Landmark
	addr.City = in.City
	addr.State = in.State
	addr.PinCode = in.PinCode

	if err := ac.Repo.Update(c.Request.Context(), addr); err != nil {
		ac.Logger.Error("failed to update address", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully", "address": addr})
}

// DeleteAddress removes a billing address owned by the caller.
func (ac *AddressController) DeleteAddress(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	addrID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Address not found"})
		return
	}

	addr, err := ac.Repo.FindByIDAndUserID(c.Request.Context(), addrID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Address not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete address"})
		return
	}

	if err := ac.Repo.Delete(c.Request.Context(), addr.ID); err != nil {
		ac.Logger.Error("failed to delete address", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}
