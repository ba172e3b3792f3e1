package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

type User struct {
	gorm.Model
	ExternalID string    `json:"external_id" gorm:"uniqueIndex;not null"` // auth provider subject
	Email      string    `json:"email" gorm:"unique;not null"`
	Name       string    `json:"name" gorm:"default:''"`
	Role       string    `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	LastLogin  time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted  bool      `gorm:"default:false"`
}
