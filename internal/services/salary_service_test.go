package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/blurrhq/hr-portal-api/internal/models"
	"github.com/blurrhq/hr-portal-api/internal/repository"
)

// SalaryServiceTestSuite defines the test suite for SalaryService
type SalaryServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *SalaryService
	org      *models.Organization
	employee *models.Employee
}

// SetupTest runs before each test
func (suite *SalaryServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Every in-memory sqlite connection is its own database, so pin the
	// pool to one connection; concurrent callers share it.
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

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

	salaryRepo := repository.NewSalaryRepository(suite.db)
	employeeRepo := repository.NewEmployeeRepository(suite.db)
	suite.service = NewSalaryService(salaryRepo, employeeRepo)

	suite.org = &models.Organization{Name: "Blurr"}
	suite.Require().NoError(suite.db.Create(suite.org).Error)

	suite.employee = &models.Employee{
		Code:           "EMP-001",
		Name:           "Ada",
		JoiningDate:    time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
		BasicSalary:    3000,
		OrganizationID: suite.org.ID,
	}
	suite.Require().NoError(suite.db.Create(suite.employee).Error)
}

// TearDownTest runs after each test
func (suite *SalaryServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SalaryServiceTestSuite) countSalaries() int64 {
	var count int64
	suite.db.Model(&models.Salary{}).Count(&count)
	return count
}

// TestReconcile_CreatesRecord tests that a first reconciliation creates
// exactly one record with the derived total
func (suite *SalaryServiceTestSuite) TestReconcile_CreatesRecord() {
	salary, err := suite.service.Reconcile(ReconcileInput{
		EmployeeID:  suite.employee.ID,
		Month:       time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		BasicSalary: 2000,
		Bonus:       100,
		Deduction:   30,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), float64(2070), salary.TotalAmount)
	assert.Equal(suite.T(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), salary.Month.UTC())
	assert.Equal(suite.T(), int64(1), suite.countSalaries())
}

// TestReconcile_IdempotentConvergence tests that reconciling the same month
// twice keeps a single record carrying the latest components
func (suite *SalaryServiceTestSuite) TestReconcile_IdempotentConvergence() {
	first, err := suite.service.Reconcile(ReconcileInput{
		EmployeeID:  suite.employee.ID,
		Month:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		BasicSalary: 2000,
		Bonus:       100,
		Deduction:   30,
	})
	suite.Require().NoError(err)

	second, err := suite.service.Reconcile(ReconcileInput{
		EmployeeID:  suite.employee.ID,
		Month:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		BasicSalary: 2000,
		Bonus:       50,
		Deduction:   30,
	})
	suite.Require().NoError(err)

	// Update in place: the original row id survives
	assert.Equal(suite.T(), first.ID, second.ID)
	assert.Equal(suite.T(), float64(2020), second.TotalAmount)
	assert.Equal(suite.T(), int64(1), suite.countSalaries())
}

// TestReconcile_DistinctMonths tests that different calendar months yield
// separate records
func (suite *SalaryServiceTestSuite) TestReconcile_DistinctMonths() {
	_, err := suite.service.Reconcile(ReconcileInput{
		EmployeeID:  suite.employee.ID,
		Month:       time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC),
		BasicSalary: 3000,
	})
	suite.Require().NoError(err)

	_, err = suite.service.Reconcile(ReconcileInput{
		EmployeeID:  suite.employee.ID,
		Month:       time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		BasicSalary: 3000,
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(2), suite.countSalaries())
}

// TestReconcile_MonthlyScenario walks the joining scenario: pay for March,
// then a corrected bonus for the same month
func (suite *SalaryServiceTestSuite) TestReconcile_MonthlyScenario() {
	first, err := suite.service.Reconcile(ReconcileInput{
		EmployeeID:  suite.employee.ID,
		Month:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		BasicSalary: 3000,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), float64(3000), first.TotalAmount)

	updated, err := suite.service.Reconcile(ReconcileInput{
		EmployeeID:  suite.employee.ID,
		Month:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		BasicSalary: 3000,
		Bonus:       200,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), first.ID, updated.ID)
	assert.Equal(suite.T(), float64(3200), updated.TotalAmount)
	assert.Equal(suite.T(), int64(1), suite.countSalaries())
}

// TestReconcile_ConcurrentSameMonth tests that simultaneous reconciliations
// of the same employee and month collapse into a single row: the upsert
// turns the loser of the insert race into an update of the winner's row
func (suite *SalaryServiceTestSuite) TestReconcile_ConcurrentSameMonth() {
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	const writers = 8

	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.service.Reconcile(ReconcileInput{
				EmployeeID:  suite.employee.ID,
				Month:       month,
				BasicSalary: 3000,
				Bonus:       float64(i * 10),
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		suite.Require().NoError(err)
	}

	var salaries []models.Salary
	suite.Require().NoError(suite.db.Find(&salaries).Error)
	suite.Require().Len(salaries, 1)

	// Whichever write landed last, its components and total are consistent.
	assert.Equal(suite.T(), 3000+salaries[0].Bonus, salaries[0].TotalAmount)
}

// TestReconcile_NegativeTotalPermitted tests that a deduction larger than
// pay round-trips without clamping
func (suite *SalaryServiceTestSuite) TestReconcile_NegativeTotalPermitted() {
	salary, err := suite.service.Reconcile(ReconcileInput{
		EmployeeID:  suite.employee.ID,
		Month:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		BasicSalary: 100,
		Deduction:   250,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), float64(-150), salary.TotalAmount)
}

// TestReconcile_RejectsNegativeInputs tests validation of the components
func (suite *SalaryServiceTestSuite) TestReconcile_RejectsNegativeInputs() {
	cases := []struct {
		name  string
		input ReconcileInput
		want  error
	}{
		{
			name: "negative basic salary",
			input: ReconcileInput{
				EmployeeID: suite.employee.ID, Month: time.Now(), BasicSalary: -1,
			},
			want: ErrNegativeBasicSalary,
		},
		{
			name: "negative bonus",
			input: ReconcileInput{
				EmployeeID: suite.employee.ID, Month: time.Now(), Bonus: -5,
			},
			want: ErrNegativeBonus,
		},
		{
			name: "negative deduction",
			input: ReconcileInput{
				EmployeeID: suite.employee.ID, Month: time.Now(), Deduction: -5,
			},
			want: ErrNegativeDeduction,
		},
	}

	for _, tc := range cases {
		_, err := suite.service.Reconcile(tc.input)
		assert.ErrorIs(suite.T(), err, tc.want, tc.name)
	}

	// Nothing may be written on validation failure
	assert.Equal(suite.T(), int64(0), suite.countSalaries())
}

// TestReconcile_UnknownEmployee tests that a missing employee is rejected
func (suite *SalaryServiceTestSuite) TestReconcile_UnknownEmployee() {
	_, err := suite.service.Reconcile(ReconcileInput{
		EmployeeID:  9999,
		Month:       time.Now(),
		BasicSalary: 1000,
	})

	assert.ErrorIs(suite.T(), err, ErrSalaryEmployeeNotFound)
	assert.Equal(suite.T(), int64(0), suite.countSalaries())
}

// TestReconcileBatch_IndependentFailures tests that one failing entry does
// not roll back or block the others
func (suite *SalaryServiceTestSuite) TestReconcileBatch_IndependentFailures() {
	other := &models.Employee{
		Code:           "EMP-002",
		Name:           "Grace",
		JoiningDate:    time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		BasicSalary:    2500,
		OrganizationID: suite.org.ID,
	}
	suite.Require().NoError(suite.db.Create(other).Error)

	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	results := suite.service.ReconcileBatch([]ReconcileInput{
		{EmployeeID: suite.employee.ID, Month: month, BasicSalary: 3000},
		{EmployeeID: 9999, Month: month, BasicSalary: 1000},
		{EmployeeID: other.ID, Month: month, BasicSalary: 2500, Bonus: 100},
	})

	suite.Require().Len(results, 3)
	assert.NoError(suite.T(), results[0].Err)
	assert.ErrorIs(suite.T(), results[1].Err, ErrSalaryEmployeeNotFound)
	assert.NoError(suite.T(), results[2].Err)
	assert.Equal(suite.T(), float64(2600), results[2].Salary.TotalAmount)
	assert.Equal(suite.T(), int64(2), suite.countSalaries())
}

// TestListMonth tests the monthly ledger view ordering and scoping
func (suite *SalaryServiceTestSuite) TestListMonth() {
	zoe := &models.Employee{
		Code:           "EMP-003",
		Name:           "Zoe",
		JoiningDate:    time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		BasicSalary:    2800,
		OrganizationID: suite.org.ID,
	}
	suite.Require().NoError(suite.db.Create(zoe).Error)

	month := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := suite.service.Reconcile(ReconcileInput{EmployeeID: zoe.ID, Month: month, BasicSalary: 2800})
	suite.Require().NoError(err)
	_, err = suite.service.Reconcile(ReconcileInput{EmployeeID: suite.employee.ID, Month: month, BasicSalary: 3000})
	suite.Require().NoError(err)

	// A different month must not leak into the listing
	_, err = suite.service.Reconcile(ReconcileInput{EmployeeID: zoe.ID, Month: month.AddDate(0, 1, 0), BasicSalary: 2800})
	suite.Require().NoError(err)

	salaries, err := suite.service.ListMonth(suite.org.ID, month)
	suite.Require().NoError(err)
	suite.Require().Len(salaries, 2)
	assert.Equal(suite.T(), "Ada", salaries[0].Employee.Name)
	assert.Equal(suite.T(), "Zoe", salaries[1].Employee.Name)
}

// TestSalaryServiceTestSuite runs the test suite
func TestSalaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SalaryServiceTestSuite))
}
