package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/blurrhq/hr-portal-api/internal/models"
)

func newMockedDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

// The upsert must target the composite unique key so a concurrent
// reconciliation for the same employee and month updates the existing row
// instead of inserting a duplicate.
func TestSalaryRepository_UpsertTargetsCompositeKey(t *testing.T) {
	db, mock := newMockedDB(t)
	repo := NewSalaryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "salaries" .* ON CONFLICT \("employee_id","month"\) DO UPDATE SET .*"total_amount"=.*RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Upsert(&models.Salary{
		EmployeeID:  7,
		Month:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		BasicSalary: 3000,
		TotalAmount: 3000,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryRepository_FindByEmployeeAndMonthRange(t *testing.T) {
	db, mock := newMockedDB(t)
	repo := NewSalaryRepository(db)

	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	from, to := models.MonthStart(month), models.MonthEnd(month)

	mock.ExpectQuery(`SELECT \* FROM "salaries" WHERE employee_id = \$1 AND month >= \$2 AND month <= \$3`).
		WithArgs(uint64(7), from, to, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "month", "total_amount"}).
			AddRow(42, 7, month, 3000.0))

	salary, err := repo.FindByEmployeeAndMonth(7, from, to)
	require.NoError(t, err)
	require.Equal(t, uint64(42), salary.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryRepository_ListByMonthScopesOrganization(t *testing.T) {
	db, mock := newMockedDB(t)
	repo := NewSalaryRepository(db)

	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	from, to := models.MonthStart(month), models.MonthEnd(month)

	mock.ExpectQuery(`SELECT .* FROM "salaries" JOIN employees ON employees\.id = salaries\.employee_id WHERE employees\.organization_id = \$1 AND \(salaries\.month >= \$2 AND salaries\.month <= \$3\) ORDER BY employees\.name ASC`).
		WithArgs(uint64(3), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "month"}).
			AddRow(1, 7, month))
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE "employees"\."id" = \$1`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "Ada"))

	salaries, err := repo.ListByMonth(3, from, to)
	require.NoError(t, err)
	require.Len(t, salaries, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
