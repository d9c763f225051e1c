package handlers

import (
	"net/http"

	carrierRepo "cargomatch/database/repository/carrier"
	"cargomatch/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CarrierHandler exposes carrier profile reads plus the upsert used by
// operations tooling. Profiles are owned by the external carrier-management
// system.
type CarrierHandler struct {
	Repo carrierRepo.CarrierRepository
}

// NewCarrierHandler creates a CarrierHandler.
func NewCarrierHandler(repo carrierRepo.CarrierRepository) *CarrierHandler {
	return &CarrierHandler{Repo: repo}
}

// GetCarrierHandler returns a carrier profile.
func (h *CarrierHandler) GetCarrierHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	profile, err := h.Repo.GetByID(id)
	if err != nil {
		if err == carrierRepo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Carrier not found"})
			return
		}
		logger.Error("Failed to retrieve carrier", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get carrier"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpsertCarrierHandler creates or replaces a carrier profile.
func (h *CarrierHandler) UpsertCarrierHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")
	var profile models.CarrierProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		logger.Error("Invalid carrier upsert request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	profile.ID = id // Ensure the ID is set.

	if err := h.Repo.Upsert(&profile); err != nil {
		logger.Error("Failed to upsert carrier", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert carrier"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
