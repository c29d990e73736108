package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"oroserver/config"
	"oroserver/handlers"
	"oroserver/middleware"
)

// RegisterAvailabilityRoutes registers the month-availability endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, sh *handlers.SchedulingHandler) {
	api := r.Group("/api/availability")
	{
		api.GET("/month", sh.MonthAvailabilityHandler)
	}
}

// RegisterBookingRoutes registers the booking submission endpoint.
func RegisterBookingRoutes(r *gin.Engine, sh *handlers.SchedulingHandler) {
	api := r.Group("/api/booking")
	{
		api.POST("", sh.CreateBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, sh *handlers.SchedulingHandler, static *handlers.StaticHandler) {
	// Reflect the caller's origin, credentialless. The browser UI is served
	// from arbitrary hosts during previews, so origins are not enumerable;
	// nothing behind these routes carries credentials or per-user state.
	// CORS runs before the limiters so their rejections are readable
	// cross-origin too.
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	maxBody := config.AppConfig.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	r.Use(middleware.BodyLimitMiddleware(maxBody))

	RegisterAvailabilityRoutes(r, sh)
	RegisterBookingRoutes(r, sh)
	RegisterHealthRoute(r)

	// Everything else is a static asset or the SPA entry document.
	r.NoRoute(static.ServeHandler)
}
