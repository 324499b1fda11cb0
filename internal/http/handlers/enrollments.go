package handlers

import (
	"fmt"
	"net/http"
	"time"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func billingService(c *gin.Context) services.BillingService {
	return services.BillingService{
		EnrollmentRepo: repositories.EnrollmentRepository{},
		PaymentRepo:    repositories.PaymentRepository{},
		RequestID:      middleware.GetRequestID(c),
	}
}

// GET /api/enrollments/:id/breakdown
func GetEnrollmentBreakdown(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	out, err := billingService(c).GetEnrollmentBilling(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type recordPaymentRequest struct {
	Category   string  `json:"category"`
	AmountPaid float64 `json:"amount_paid"`
	Method     string  `json:"method"`
	PaidAt     string  `json:"paid_at"` // "2006-01-02 15:04:05" or empty for a placeholder
}

// POST /api/enrollments/:id/payments
func RecordEnrollmentPayment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	var req recordPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	in := repositories.PaymentInput{
		Category:   models.ParsePaymentCategory(req.Category),
		AmountPaid: req.AmountPaid,
		Method:     req.Method,
	}
	if req.PaidAt != "" {
		ts, err := utils.ParseDateTime(req.PaidAt)
		if err != nil {
			if ts, err = utils.ParseDate(req.PaidAt); err != nil {
				RespondError(c, http.StatusBadRequest, "invalid paid_at", err)
				return
			}
		}
		in.PaidAt = &ts
	}

	out, err := billingService(c).RecordPayment(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	actor := middleware.AuthContext(c)
	utils.LogEvent(middleware.GetRequestID(c), "payments", "record",
		fmt.Sprintf("enrollment_id=%d amount=%.2f user_id=%d", id, req.AmountPaid, actor.UserID))
	c.JSON(http.StatusCreated, out)
}

// GET /api/enrollments/:id/statement
func GetEnrollmentStatementPDF(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	svc := services.StatementService{
		Billing:   billingService(c),
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateStatement(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// scoreNow lets tests pin the clock via the ?at= query param while normal
// requests use wall time at the boundary; the engine itself never reads a clock.
func scoreNow(c *gin.Context) time.Time {
	if raw := c.Query("at"); raw != "" {
		if ts, err := utils.ParseDate(raw); err == nil {
			return ts
		}
	}
	return utils.NowUTC()
}

// GET /api/customers/:id/score
func GetCustomerScore(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	svc := services.ScoreService{
		EnrollmentRepo: repositories.EnrollmentRepository{},
		CustomerRepo:   repositories.CustomerRepository{},
		RequestID:      middleware.GetRequestID(c),
	}
	out, err := svc.ScoreCustomer(id, scoreNow(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
