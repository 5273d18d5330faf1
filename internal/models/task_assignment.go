package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskAssignment struct {
	TaskID     uint64         `gorm:"primarykey" json:"task_id"`
	EmployeeID uint64         `gorm:"primarykey" json:"employee_id"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task     Task     `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}
