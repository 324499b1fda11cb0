package handlers

import (
	"net/http"

	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/summary
func GetTripSummary(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	svc := services.ReportsService{
		EnrollmentRepo: repositories.EnrollmentRepository{},
		TripRepo:       repositories.TripRepository{},
		RequestID:      middleware.GetRequestID(c),
	}
	out, err := svc.GetTripReport(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
