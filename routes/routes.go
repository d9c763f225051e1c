package routes

import (
	"net/http"
	"time"

	"cargomatch/handlers"
	"cargomatch/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handler groups wired in main.
type HandlerBundle struct {
	Shipment *handlers.ShipmentHandler
	Bid      *handlers.BidHandler
	Matching *handlers.MatchingHandler
	Carrier  *handlers.CarrierHandler
}

// RegisterShipmentRoutes registers shipper-facing shipment endpoints.
func RegisterShipmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/shipments")
	{
		api.POST("", hb.Shipment.CreateShipmentHandler)
		api.GET("", hb.Shipment.ListShipmentsHandler)
		api.GET("/:id", hb.Shipment.GetShipmentHandler)
		api.POST("/:id/cancel", hb.Shipment.CancelShipmentHandler)
		api.GET("/:id/ranked-bids", hb.Matching.RankedBidsHandler)
		api.POST("/:id/select/:bidId", hb.Shipment.SelectBidHandler)
		api.POST("/:id/bids", hb.Bid.PlaceBidHandler)
	}
}

// RegisterBidRoutes registers carrier-facing bid endpoints.
func RegisterBidRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bids")
	{
		api.GET("/:id", hb.Bid.GetBidHandler)
		api.POST("/:id/withdraw", hb.Bid.WithdrawBidHandler)
	}
}

// RegisterCarrierRoutes registers carrier profile endpoints.
func RegisterCarrierRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/carriers")
	{
		api.GET("/:id", hb.Carrier.GetCarrierHandler)
		api.GET("/:id/bids", hb.Bid.ListCarrierBidsHandler)
		api.PUT("/:id", hb.Carrier.UpsertCarrierHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Shipper-ID", "X-Carrier-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterShipmentRoutes(r, hb)
	RegisterBidRoutes(r, hb)
	RegisterCarrierRoutes(r, hb)
	RegisterHealthRoute(r)
}
