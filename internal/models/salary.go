package models

import (
	"time"
)

// Salary is a monthly pay snapshot for one employee. Month is always
// normalized to the first day of the calendar month, and the composite
// unique index is what guarantees at most one row per employee and month.
// Salary rows are never deleted, so there is no soft-delete column that
// could shadow the index.
type Salary struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	EmployeeID  uint64    `gorm:"not null;uniqueIndex:idx_salaries_employee_month" json:"employee_id"`
	Month       time.Time `gorm:"not null;uniqueIndex:idx_salaries_employee_month" json:"month"`
	BasicSalary float64   `gorm:"not null" json:"basic_salary"`
	Bonus       float64   `gorm:"not null;default:0" json:"bonus"`
	Deduction   float64   `gorm:"not null;default:0" json:"deduction"`
	TotalAmount float64   `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// MonthStart returns the first instant of t's calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last instant of t's calendar month in UTC, so that
// [MonthStart, MonthEnd] is an inclusive range covering the whole month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
