// Package payments converts confirmed external payment events into
// enrollment and ledger state, exactly once per (student, course) pair.
package payments

import (
	"errors"

	"lms/models"
	courseModels "lms/models/course"
	"lms/services/apperrors"
	"lms/services/catalog"

	"gorm.io/gorm"
)

// errLostRace aborts the reconcile transaction when the enrollment insert
// hits the unique index: a concurrent reconcile for the same pair won.
var errLostRace = errors.New("reconcile: lost enrollment race")

type Service struct {
	db      *gorm.DB
	catalog *catalog.Service
}

func NewService(db *gorm.DB, cat *catalog.Service) *Service {
	return &Service{db: db, catalog: cat}
}

// ReconcileResult is what the caller gets back. AlreadyEnrolled marks the
// idempotent no-op variant: a duplicated confirmation looks identical to the
// first successful one, except no new Payment row is reported.
type ReconcileResult struct {
	Enrollment      *courseModels.Enrollment `json:"enrollment"`
	Payment         *models.Payment          `json:"payment,omitempty"`
	AlreadyEnrolled bool                     `json:"already_enrolled"`
}

// Reconcile turns an already-confirmed provider payment into one Enrollment,
// one Payment ledger row and the profile counter updates, as a single unit
// of work. amount is the figure the provider confirmed; it is recorded
// verbatim and never recomputed from the course's list price.
//
// The operation is idempotent per (student, course): any later confirmed
// payment for the same pair, whatever its order id, returns the existing
// enrollment and writes nothing.
func (s *Service) Reconcile(studentID, courseID uint, orderID string, amount float64) (*ReconcileResult, error) {
	var res ReconcileResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var student models.User
		if err := tx.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		var crs courseModels.Course
		if err := tx.First(&crs, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		// Idempotency check: an existing enrollment means a confirmation for
		// this pair was already reconciled. No further writes.
		var existing courseModels.Enrollment
		err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&existing).Error
		if err == nil {
			res.Enrollment = &existing
			res.AlreadyEnrolled = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		purchasable, err := s.catalog.IsPurchasable(tx, courseID)
		if err != nil {
			return err
		}
		if !purchasable {
			return apperrors.ErrCourseNotPurchasable
		}

		// The unique (student_id, course_id) index is the compare-and-set:
		// of two racing reconciles only one insert succeeds.
		enrollment := courseModels.Enrollment{
			StudentID: studentID,
			CourseID:  courseID,
			Progress:  0,
			Completed: false,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errLostRace
			}
			return err
		}

		payment := models.Payment{
			StudentID:    studentID,
			CourseID:     courseID,
			InstructorID: crs.InstructorID,
			Amount:       amount,
			Status:       models.PaymentStatusCompleted,
			OrderID:      orderID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if err := incrementStudentCounters(tx, studentID); err != nil {
			return err
		}
		if err := incrementInstructorCounters(tx, crs.InstructorID, amount); err != nil {
			return err
		}

		res.Enrollment = &enrollment
		res.Payment = &payment
		return nil
	})

	if errors.Is(err, errLostRace) {
		// The transaction rolled back without writes; report the winner's
		// enrollment as the idempotent success variant.
		var existing courseModels.Enrollment
		if ferr := s.db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&existing).Error; ferr != nil {
			return nil, apperrors.ErrConflict
		}
		return &ReconcileResult{Enrollment: &existing, AlreadyEnrolled: true}, nil
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return &res, nil
}

func incrementStudentCounters(tx *gorm.DB, studentID uint) error {
	profile := models.UserProfile{UserID: studentID}
	if err := tx.Where(models.UserProfile{UserID: studentID}).FirstOrCreate(&profile).Error; err != nil {
		return err
	}
	return tx.Model(&models.UserProfile{}).
		Where("user_id = ?", studentID).
		UpdateColumn("total_courses_enrolled", gorm.Expr("total_courses_enrolled + ?", 1)).Error
}

func incrementInstructorCounters(tx *gorm.DB, instructorID uint, amount float64) error {
	profile := models.InstructorProfile{UserID: instructorID}
	if err := tx.Where(models.InstructorProfile{UserID: instructorID}).FirstOrCreate(&profile).Error; err != nil {
		return err
	}
	return tx.Model(&models.InstructorProfile{}).
		Where("user_id = ?", instructorID).
		UpdateColumns(map[string]interface{}{
			"total_students":    gorm.Expr("total_students + ?", 1),
			"revenue_generated": gorm.Expr("revenue_generated + ?", amount),
		}).Error
}
