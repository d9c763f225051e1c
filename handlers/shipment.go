package handlers

import (
	"net/http"

	"cargomatch/models"
	"cargomatch/services/shipment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShipmentHandler exposes shipper-facing shipment endpoints.
type ShipmentHandler struct {
	Service shipment.ShipmentService
}

// NewShipmentHandler creates a ShipmentHandler.
func NewShipmentHandler(svc shipment.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{Service: svc}
}

// shipperID extracts the pre-validated caller identity. Authorization itself
// is an upstream collaborator's concern.
func shipperID(c *gin.Context) string {
	return c.GetHeader("X-Shipper-ID")
}

// CreateShipmentHandler creates a new OPEN shipment.
func (h *ShipmentHandler) CreateShipmentHandler(c *gin.Context) {
	logger := getLogger(c)
	var input models.Shipment
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Error("Invalid shipment creation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Service.CreateShipment(shipperID(c), &input)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetShipmentHandler returns details for a specific shipment.
func (h *ShipmentHandler) GetShipmentHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	result, err := h.Service.GetShipment(id, shipperID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListShipmentsHandler returns the caller's shipments.
func (h *ShipmentHandler) ListShipmentsHandler(c *gin.Context) {
	logger := getLogger(c)

	shipments, err := h.Service.ListShipments(shipperID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipments": shipments})
}

// CancelShipmentHandler cancels an OPEN shipment.
func (h *ShipmentHandler) CancelShipmentHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	result, err := h.Service.CancelShipment(id, shipperID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SelectBidHandler finalizes the shipment/carrier pairing.
func (h *ShipmentHandler) SelectBidHandler(c *gin.Context) {
	logger := getLogger(c)
	shipmentID := c.Param("id")
	bidID := c.Param("bidId")

	result, err := h.Service.SelectBid(c.Request.Context(), shipmentID, bidID, shipperID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
