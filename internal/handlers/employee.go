package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blurrhq/hr-portal-api/internal/dto"
	apierrors "github.com/blurrhq/hr-portal-api/internal/errors"
	"github.com/blurrhq/hr-portal-api/internal/services"
)

// EmployeeHandler coordinates employee HTTP handlers.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// EmployeeRequest is the payload for creating or updating an employee.
type EmployeeRequest struct {
	Code        string    `json:"employee_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	JoiningDate time.Time `json:"joining_date" binding:"required"`
	BasicSalary float64   `json:"basic_salary"`
}

// ListEmployees lists the employees of the user's organization
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	orgID, ok := currentOrganizationID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	employees, err := h.employeeService.ListEmployees(orgID)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": dto.ToEmployeeDTOs(employees),
	})
}

// GetEmployee returns a single employee
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// CreateEmployee creates an employee in the user's organization
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	orgID, ok := currentOrganizationID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.CreateEmployee(services.EmployeeInput{
		Code:           req.Code,
		Name:           req.Name,
		JoiningDate:    req.JoiningDate,
		BasicSalary:    req.BasicSalary,
		OrganizationID: orgID,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// UpdateEmployee overwrites an employee's fields
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.UpdateEmployee(id, services.EmployeeInput{
		Code:        req.Code,
		Name:        req.Name,
		JoiningDate: req.JoiningDate,
		BasicSalary: req.BasicSalary,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// DeleteEmployee removes an employee, detaching task assignments
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(id); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee deleted successfully",
	})
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, "Employee not found")
	case errors.Is(err, services.ErrEmployeeCodeTaken):
		apierrors.Conflict(c, "An employee with this ID already exists")
	case errors.Is(err, services.ErrEmployeeCodeRequired):
		apierrors.BadRequest(c, "Employee ID is required")
	case errors.Is(err, services.ErrEmployeeNameRequired):
		apierrors.BadRequest(c, "Name is required")
	case errors.Is(err, services.ErrEmployeeNegativeSalary):
		apierrors.BadRequest(c, "Basic salary must be positive")
	case errors.Is(err, services.ErrEmployeeOrgNotFound):
		apierrors.BadRequest(c, "Organization not found")
	default:
		apierrors.InternalError(c, "")
	}
}
