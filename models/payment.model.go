package models

import "time"

const (
	PaymentStatusCompleted = "COMPLETED"
)

// Payment is an append-only ledger entry, one per successful reconciliation.
// Amount is the figure confirmed by the payment provider, not the list price.
// InstructorID is denormalized from the course at creation time.
type Payment struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	StudentID    uint      `json:"student_id" gorm:"index;not null"`
	CourseID     uint      `json:"course_id" gorm:"index;not null"`
	InstructorID uint      `json:"instructor_id" gorm:"index;not null"`
	Amount       float64   `json:"amount" gorm:"not null"`
	Status       string    `json:"status" gorm:"not null"`
	OrderID      string    `json:"order_id" gorm:"index"` // provider transaction id
	CreatedAt    time.Time `json:"created_at"`
}
