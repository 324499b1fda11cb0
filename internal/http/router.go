package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backend/internal/config"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Billing engine endpoints
		secured := api.Group("")
		secured.Use(middleware.RequireAuth(h.JWTSecret()))

		enrollments := secured.Group("/enrollments")
		enrollments.GET("/:id/breakdown", h.GetEnrollmentBreakdown)
		enrollments.POST("/:id/payments", h.RecordEnrollmentPayment)
		enrollments.GET("/:id/statement", h.GetEnrollmentStatementPDF)

		customers := secured.Group("/customers")
		customers.GET("/:id/score", h.GetCustomerScore)

		trips := secured.Group("/trips")
		trips.GET("/:id/summary", h.GetTripSummary)
	}

	h.SetRouter(r)
	return r
}
