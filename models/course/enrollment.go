package course

import "time"

// Enrollment grants a student access to a course. At most one row may exist
// per (student, course); the composite unique index is the compare-and-set
// that reconciliation relies on under concurrent confirmations.
type Enrollment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	StudentID uint      `json:"student_id" gorm:"uniqueIndex:idx_enroll_student_course;not null"`
	CourseID  uint      `json:"course_id" gorm:"uniqueIndex:idx_enroll_student_course;not null"`
	Progress  int       `json:"progress" gorm:"default:0"` // 0-100
	Completed bool      `json:"completed" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
