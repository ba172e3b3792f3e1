package course

import "time"

// Lesson is the leaf content unit. Same append-only ordering as Module,
// scoped to its parent module. Duration is seconds, clamped to >= 0.
type Lesson struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	ModuleID     uint      `json:"module_id" gorm:"uniqueIndex:idx_lesson_module_order,priority:1;not null"`
	Title        string    `json:"title" gorm:"not null"`
	Duration     int       `json:"duration" gorm:"default:0"`
	ContentURL   string    `json:"content_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	OrderIndex   int       `json:"order" gorm:"uniqueIndex:idx_lesson_module_order,priority:2;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
