package models

import (
	"time"

	"gorm.io/gorm"
)

type Organization struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Employees []Employee `gorm:"foreignKey:OrganizationID" json:"employees,omitempty"`
	Projects  []Project  `gorm:"foreignKey:OrganizationID" json:"projects,omitempty"`
	Users     []User     `gorm:"foreignKey:OrganizationID" json:"users,omitempty"`
}
