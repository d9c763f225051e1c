package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cargomatch/config"
	"cargomatch/cron"
	"cargomatch/database"
	bidRepoPkg "cargomatch/database/repository/bid"
	carrierRepoPkg "cargomatch/database/repository/carrier"
	shipmentRepoPkg "cargomatch/database/repository/shipment"
	"cargomatch/handlers"
	"cargomatch/middleware"
	"cargomatch/routes"
	bidSvc "cargomatch/services/bid"
	"cargomatch/services/matching"
	shipmentSvc "cargomatch/services/shipment"
	"cargomatch/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Index bootstrap.
	if err := shipmentRepoPkg.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create shipment indexes: %v", err)
	}
	if err := bidRepoPkg.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create bid indexes: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	shipRepo := shipmentRepoPkg.NewMongoShipmentRepo()
	bidRepo := bidRepoPkg.NewMongoBidRepo()
	carrRepo := carrierRepoPkg.NewMongoCarrierRepo()

	cacheClient := utils.GetCacheClient()

	// services.
	matchingService := &matching.DefaultMatchingService{
		ShipmentRepo: shipRepo,
		BidRepo:      bidRepo,
		CarrierRepo:  carrRepo,
		CacheClient:  cacheClient,
		Weights:      matching.WeightsFromConfig(),
		CacheTTL:     time.Duration(config.AppConfig.RankCacheTTL) * time.Second,
	}

	shipmentService := &shipmentSvc.DefaultShipmentService{
		ShipmentRepo: shipRepo,
		BidRepo:      bidRepo,
		CacheClient:  cacheClient,
	}

	bidService := &bidSvc.DefaultBidService{
		BidRepo:      bidRepo,
		ShipmentRepo: shipRepo,
		CacheClient:  cacheClient,
		Scheduler:    cron.NewExpiryScheduler(),
	}

	// Background bid-expiry worker.
	cron.InitExpiryWorker(bidService)

	// Health monitoring.
	utils.StartHealthMonitor(cacheClient, database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Shipment: handlers.NewShipmentHandler(shipmentService),
		Bid:      handlers.NewBidHandler(bidService),
		Matching: handlers.NewMatchingHandler(matchingService),
		Carrier:  handlers.NewCarrierHandler(carrRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
