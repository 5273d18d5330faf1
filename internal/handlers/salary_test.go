package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/blurrhq/hr-portal-api/internal/constants"
	"github.com/blurrhq/hr-portal-api/internal/database"
	"github.com/blurrhq/hr-portal-api/internal/models"
	"github.com/blurrhq/hr-portal-api/internal/repository"
	"github.com/blurrhq/hr-portal-api/internal/services"
)

// SalaryHandlerTestSuite defines the test suite for SalaryHandler
type SalaryHandlerTestSuite struct {
	suite.Suite
	db       *gorm.DB
	router   *gin.Engine
	user     *models.User
	employee *models.Employee
}

// SetupTest runs before each test
func (suite *SalaryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Employee{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Salary{},
	)
	suite.Require().NoError(err)
	database.SetDB(suite.db)

	org := &models.Organization{Name: "Blurr"}
	suite.Require().NoError(suite.db.Create(org).Error)

	suite.user = &models.User{
		Name:           "Ada",
		Email:          "ada@example.com",
		PasswordHash:   "x",
		OrganizationID: &org.ID,
	}
	suite.Require().NoError(suite.db.Create(suite.user).Error)

	suite.employee = &models.Employee{
		Code:           "EMP-001",
		Name:           "Ada",
		JoiningDate:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		BasicSalary:    3000,
		OrganizationID: org.ID,
	}
	suite.Require().NoError(suite.db.Create(suite.employee).Error)

	salaryService := services.NewSalaryService(
		repository.NewSalaryRepository(suite.db),
		repository.NewEmployeeRepository(suite.db),
	)
	handler := NewSalaryHandler(salaryService)

	suite.router = gin.New()
	userID := suite.user.ID
	suite.router.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})
	suite.router.GET("/api/salaries", handler.ListMonth)
	suite.router.POST("/api/salaries/reconcile", handler.Reconcile)
	suite.router.POST("/api/salaries/reconcile/batch", handler.ReconcileBatch)
}

// TearDownTest runs after each test
func (suite *SalaryHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SalaryHandlerTestSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// TestReconcile tests a successful single reconciliation
func (suite *SalaryHandlerTestSuite) TestReconcile() {
	w := suite.postJSON("/api/salaries/reconcile", gin.H{
		"employee_id":  suite.employee.ID,
		"month":        "2024-03",
		"basic_salary": 2000,
		"bonus":        100,
		"deduction":    30,
	})

	suite.Require().Equal(http.StatusOK, w.Code)

	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(suite.T(), float64(2070), body["total_amount"])
}

// TestReconcile_AcceptsDateForms tests that full dates collapse to the month
func (suite *SalaryHandlerTestSuite) TestReconcile_AcceptsDateForms() {
	first := suite.postJSON("/api/salaries/reconcile", gin.H{
		"employee_id":  suite.employee.ID,
		"month":        "2024-03-15",
		"basic_salary": 3000,
	})
	suite.Require().Equal(http.StatusOK, first.Code)

	second := suite.postJSON("/api/salaries/reconcile", gin.H{
		"employee_id":  suite.employee.ID,
		"month":        "2024-03",
		"basic_salary": 3000,
		"bonus":        200,
	})
	suite.Require().Equal(http.StatusOK, second.Code)

	var count int64
	suite.db.Model(&models.Salary{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestReconcile_BadInput tests request validation responses
func (suite *SalaryHandlerTestSuite) TestReconcile_BadInput() {
	w := suite.postJSON("/api/salaries/reconcile", gin.H{
		"employee_id":  suite.employee.ID,
		"month":        "March 2024",
		"basic_salary": 2000,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.postJSON("/api/salaries/reconcile", gin.H{
		"employee_id":  suite.employee.ID,
		"month":        "2024-03",
		"basic_salary": -5,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.postJSON("/api/salaries/reconcile", gin.H{
		"employee_id":  uint64(9999),
		"month":        "2024-03",
		"basic_salary": 2000,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Employee not found")
}

// TestReconcileBatch tests that per-entry failures come back in results
func (suite *SalaryHandlerTestSuite) TestReconcileBatch() {
	w := suite.postJSON("/api/salaries/reconcile/batch", gin.H{
		"entries": []gin.H{
			{"employee_id": suite.employee.ID, "month": "2024-03", "basic_salary": 3000},
			{"employee_id": uint64(9999), "month": "2024-03", "basic_salary": 1000},
		},
	})

	suite.Require().Equal(http.StatusOK, w.Code)

	var body struct {
		Results []struct {
			EmployeeID uint64 `json:"employee_id"`
			Success    bool   `json:"success"`
			Error      string `json:"error"`
		} `json:"results"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Results, 2)
	assert.True(suite.T(), body.Results[0].Success)
	assert.False(suite.T(), body.Results[1].Success)
	assert.NotEmpty(suite.T(), body.Results[1].Error)

	var count int64
	suite.db.Model(&models.Salary{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestReconcileBatch_EmptyEntries tests the minimum size constraint
func (suite *SalaryHandlerTestSuite) TestReconcileBatch_EmptyEntries() {
	w := suite.postJSON("/api/salaries/reconcile/batch", gin.H{"entries": []gin.H{}})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListMonth tests the monthly listing endpoint
func (suite *SalaryHandlerTestSuite) TestListMonth() {
	w := suite.postJSON("/api/salaries/reconcile", gin.H{
		"employee_id":  suite.employee.ID,
		"month":        "2024-03",
		"basic_salary": 3000,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/salaries?month=2024-03", nil)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code)

	var body struct {
		Salaries []struct {
			EmployeeID  uint64  `json:"employee_id"`
			TotalAmount float64 `json:"total_amount"`
		} `json:"salaries"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Salaries, 1)
	assert.Equal(suite.T(), suite.employee.ID, body.Salaries[0].EmployeeID)
	assert.Equal(suite.T(), float64(3000), body.Salaries[0].TotalAmount)

	// Missing month is a client error.
	req = httptest.NewRequest(http.MethodGet, "/api/salaries", nil)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSalaryHandlerTestSuite runs the test suite
func TestSalaryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SalaryHandlerTestSuite))
}
