package course

import "time"

// Course is a purchasable unit of content owned by one instructor.
// The content hierarchy uses hard deletes: removing a course must leave no
// module or lesson rows behind, so there is no soft-delete column here.
type Course struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	InstructorID uint      `json:"instructor_id" gorm:"index;not null"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	Category     string    `json:"category" gorm:"index"`
	Price        float64   `json:"price" gorm:"default:0"`
	Published    bool      `json:"published" gorm:"default:false"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
