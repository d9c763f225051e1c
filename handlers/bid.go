package handlers

import (
	"net/http"

	"cargomatch/models"
	"cargomatch/services/bid"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BidHandler exposes carrier-facing bid endpoints.
type BidHandler struct {
	Service bid.BidService
}

// NewBidHandler creates a BidHandler.
func NewBidHandler(svc bid.BidService) *BidHandler {
	return &BidHandler{Service: svc}
}

// carrierID extracts the pre-validated caller identity.
func carrierID(c *gin.Context) string {
	return c.GetHeader("X-Carrier-ID")
}

// PlaceBidHandler records a carrier's offer against an open shipment.
func (h *BidHandler) PlaceBidHandler(c *gin.Context) {
	logger := getLogger(c)
	var input models.Bid
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Error("Invalid bid placement request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	input.ShipmentID = c.Param("id")

	created, err := h.Service.PlaceBid(carrierID(c), &input)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBidHandler returns details for a specific bid.
func (h *BidHandler) GetBidHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	result, err := h.Service.GetBid(id)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListCarrierBidsHandler returns all bids placed by a carrier.
func (h *BidHandler) ListCarrierBidsHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	bids, err := h.Service.ListCarrierBids(id)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

// WithdrawBidHandler retracts a pending bid.
func (h *BidHandler) WithdrawBidHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	result, err := h.Service.WithdrawBid(id, carrierID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
