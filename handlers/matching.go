package handlers

import (
	"net/http"

	"cargomatch/services/matching"

	"github.com/gin-gonic/gin"
)

// MatchingHandler exposes the bid ranking endpoint consumed by the
// shipper-facing selection UI.
type MatchingHandler struct {
	Service matching.MatchingService
}

// NewMatchingHandler creates a MatchingHandler.
func NewMatchingHandler(svc matching.MatchingService) *MatchingHandler {
	return &MatchingHandler{Service: svc}
}

// RankedBidsHandler returns the shipment's scored, classified bid list plus
// aggregate matching statistics.
func (h *MatchingHandler) RankedBidsHandler(c *gin.Context) {
	logger := getLogger(c)
	shipmentID := c.Param("id")

	result, err := h.Service.RankBids(shipmentID, shipperID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
