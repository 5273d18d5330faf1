package models

import (
	"time"

	"gorm.io/gorm"
)

type Employee struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Code           string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_employees_org_code" json:"code"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	JoiningDate    time.Time      `gorm:"not null" json:"joining_date"`
	BasicSalary    float64        `gorm:"not null" json:"basic_salary"`
	OrganizationID uint64         `gorm:"not null;uniqueIndex:idx_employees_org_code" json:"organization_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization     `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Assignments  []TaskAssignment `gorm:"foreignKey:EmployeeID" json:"assignments,omitempty"`
	Salaries     []Salary         `gorm:"foreignKey:EmployeeID" json:"salaries,omitempty"`
}
