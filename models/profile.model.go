package models

import "gorm.io/gorm"

// UserProfile holds the public profile plus the student-side aggregates.
// TotalCoursesEnrolled is only ever incremented by payment reconciliation.
type UserProfile struct {
	gorm.Model
	UserID               uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Name                 string `json:"name" gorm:"default:''"`
	Bio                  string `json:"bio" gorm:"default:''"`
	AvatarURL            string `json:"avatar_url" gorm:"default:''"`
	Country              string `json:"country" gorm:"default:''"`
	Website              string `json:"website" gorm:"default:''"`
	Github               string `json:"github" gorm:"default:''"`
	Linkedin             string `json:"linkedin" gorm:"default:''"`
	Twitter              string `json:"twitter" gorm:"default:''"`
	TotalCoursesEnrolled int64  `json:"total_courses_enrolled" gorm:"default:0"`
}

// InstructorProfile holds instructor-side aggregates, incremented by
// payment reconciliation and read by the payout run.
type InstructorProfile struct {
	gorm.Model
	UserID           uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	PayoutEmail      string  `json:"payout_email" gorm:"default:''"`
	TotalStudents    int64   `json:"total_students" gorm:"default:0"`
	RevenueGenerated float64 `json:"revenue_generated" gorm:"default:0"`
	RevenuePaidOut   float64 `json:"revenue_paid_out" gorm:"default:0"`
}
