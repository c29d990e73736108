// File: oroserver/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oroserver/config"
	"oroserver/handlers"
	"oroserver/hubspot"
	"oroserver/middleware"
	"oroserver/routes"
	"oroserver/services/scheduling"
	"oroserver/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())

	// Upstream client.
	upstream := hubspot.NewClient(config.AppConfig.HubspotBaseURL, config.AppConfig.UpstreamTimeout)

	// Services.
	schedulingService := &scheduling.DefaultSchedulingService{
		Upstream: upstream,
		Slug:     config.AppConfig.HubspotMeetingSlug,
		Location: config.AppConfig.HubspotBookLocation,
	}

	schedulingHandler := handlers.NewSchedulingHandler(schedulingService, logger)
	staticHandler := handlers.NewStaticHandler(config.AppConfig.StaticDir)

	// Register routes.
	routes.RegisterRoutes(router, schedulingHandler, staticHandler)

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
