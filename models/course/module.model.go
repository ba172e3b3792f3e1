package course

import "time"

// Module is an ordered section within a course. OrderIndex is assigned as
// max(existing)+1 on append and never renumbered, so deletes leave gaps.
type Module struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CourseID    uint      `json:"course_id" gorm:"uniqueIndex:idx_module_course_order,priority:1;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order" gorm:"uniqueIndex:idx_module_course_order,priority:2;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
