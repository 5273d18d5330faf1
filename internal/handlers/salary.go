package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blurrhq/hr-portal-api/internal/dto"
	apierrors "github.com/blurrhq/hr-portal-api/internal/errors"
	"github.com/blurrhq/hr-portal-api/internal/services"
)

// SalaryHandler coordinates salary ledger HTTP handlers.
type SalaryHandler struct {
	salaryService *services.SalaryService
}

// NewSalaryHandler creates a new SalaryHandler.
func NewSalaryHandler(salaryService *services.SalaryService) *SalaryHandler {
	return &SalaryHandler{
		salaryService: salaryService,
	}
}

// ReconcileRequest carries one employee's pay components for a month.
type ReconcileRequest struct {
	EmployeeID  uint64  `json:"employee_id" binding:"required"`
	Month       string  `json:"month" binding:"required"`
	BasicSalary float64 `json:"basic_salary"`
	Bonus       float64 `json:"bonus"`
	Deduction   float64 `json:"deduction"`
}

func (r ReconcileRequest) toInput() (services.ReconcileInput, error) {
	month, err := parseMonth(r.Month)
	if err != nil {
		return services.ReconcileInput{}, err
	}

	return services.ReconcileInput{
		EmployeeID:  r.EmployeeID,
		Month:       month,
		BasicSalary: r.BasicSalary,
		Bonus:       r.Bonus,
		Deduction:   r.Deduction,
	}, nil
}

// parseMonth accepts either a full date or a year-month value; only the
// calendar month matters downstream.
func parseMonth(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid month")
}

// Reconcile ensures a single salary record for the employee's month
func (h *SalaryHandler) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		apierrors.BadRequest(c, "Invalid month, expected YYYY-MM or a date")
		return
	}

	salary, err := h.salaryService.Reconcile(input)
	if err != nil {
		respondSalaryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSalaryDTO(*salary))
}

// ReconcileBatch reconciles a list of employees for a month; failures are
// independent per entry and never roll back earlier successes.
func (h *SalaryHandler) ReconcileBatch(c *gin.Context) {
	type BatchRequest struct {
		Entries []ReconcileRequest `json:"entries" binding:"required,min=1"`
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	inputs := make([]services.ReconcileInput, 0, len(req.Entries))
	for _, entry := range req.Entries {
		input, err := entry.toInput()
		if err != nil {
			apierrors.BadRequest(c, "Invalid month, expected YYYY-MM or a date")
			return
		}
		inputs = append(inputs, input)
	}

	results := h.salaryService.ReconcileBatch(inputs)

	c.JSON(http.StatusOK, gin.H{
		"results": dto.ToReconcileResultDTOs(results),
	})
}

// ListMonth returns the salary table for the user's organization and month
func (h *SalaryHandler) ListMonth(c *gin.Context) {
	monthStr := c.Query("month")
	if monthStr == "" {
		apierrors.BadRequest(c, "month query parameter is required")
		return
	}

	month, err := parseMonth(monthStr)
	if err != nil {
		apierrors.BadRequest(c, "Invalid month, expected YYYY-MM or a date")
		return
	}

	orgID, ok := currentOrganizationID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	salaries, err := h.salaryService.ListMonth(orgID, month)
	if err != nil {
		respondSalaryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salaries": dto.ToSalaryDTOs(salaries),
	})
}

func respondSalaryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSalaryEmployeeNotFound):
		apierrors.BadRequest(c, "Employee not found")
	case errors.Is(err, services.ErrNegativeBasicSalary):
		apierrors.BadRequest(c, "Basic salary must be positive")
	case errors.Is(err, services.ErrNegativeBonus):
		apierrors.BadRequest(c, "Bonus must be positive")
	case errors.Is(err, services.ErrNegativeDeduction):
		apierrors.BadRequest(c, "Deduction must be positive")
	case errors.Is(err, services.ErrSalaryNotFound):
		apierrors.NotFound(c, "Salary record not found")
	default:
		apierrors.InternalError(c, "")
	}
}
