// Package catalog maintains the course content hierarchy: courses, their
// ordered modules and each module's ordered lessons, the publish gate, and
// the single purchasability predicate the payments service checks before
// creating an enrollment.
package catalog

import (
	"errors"

	"lms/services/apperrors"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// Service wraps the injected storage handle. Every mutating operation runs
// inside one transaction: it either fully commits or leaves no trace.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateCourse creates an unpublished course owned by the instructor.
func (s *Service) CreateCourse(instructorID uint, title, description, category string, price float64) (*courseModels.Course, error) {
	crs := courseModels.Course{
		InstructorID: instructorID,
		Title:        title,
		Description:  description,
		Category:     category,
		Price:        price,
	}
	if err := s.db.Create(&crs).Error; err != nil {
		return nil, translate(err)
	}
	return &crs, nil
}

// AppendModule adds a module at the end of the course. The order value is
// max(existing)+1 and is never reassigned: deleting a module leaves a
// permanent gap. The unique (course_id, order_index) index turns a lost
// append race into ErrConflict instead of two modules sharing an order.
func (s *Service) AppendModule(courseID, instructorID uint, title, description string) (*courseModels.Module, error) {
	var mod courseModels.Module
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.authorizeCourse(tx, courseID, instructorID); err != nil {
			return err
		}

		var maxOrder int
		if err := tx.Model(&courseModels.Module{}).
			Where("course_id = ?", courseID).
			Select("COALESCE(MAX(order_index), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}

		mod = courseModels.Module{
			CourseID:    courseID,
			Title:       title,
			Description: description,
			OrderIndex:  maxOrder + 1,
		}
		return tx.Create(&mod).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &mod, nil
}

// AppendLesson adds a lesson at the end of the module. A negative duration
// is clamped to zero rather than rejected.
func (s *Service) AppendLesson(moduleID, instructorID uint, title string, duration int, contentURL, thumbnailURL string) (*courseModels.Lesson, error) {
	if duration < 0 {
		duration = 0
	}

	var lesson courseModels.Lesson
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, _, err := s.authorizeModule(tx, moduleID, instructorID); err != nil {
			return err
		}

		var maxOrder int
		if err := tx.Model(&courseModels.Lesson{}).
			Where("module_id = ?", moduleID).
			Select("COALESCE(MAX(order_index), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}

		lesson = courseModels.Lesson{
			ModuleID:     moduleID,
			Title:        title,
			Duration:     duration,
			ContentURL:   contentURL,
			ThumbnailURL: thumbnailURL,
			OrderIndex:   maxOrder + 1,
		}
		return tx.Create(&lesson).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &lesson, nil
}

// IsPurchasable reports whether the course exists and is published. It takes
// the storage handle explicitly so the payments service can evaluate it
// inside its own transaction. Module and lesson counts are not re-checked
// here; that gate runs once, at the publish transition.
func (s *Service) IsPurchasable(db *gorm.DB, courseID uint) (bool, error) {
	var count int64
	if err := db.Model(&courseModels.Course{}).
		Where("id = ? AND published = ?", courseID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// TryPublish flips the course to published once the gate is satisfied:
// at least one module, at least one lesson in some module, price >= 0.
// Publishing is one-way; there is no unpublish.
func (s *Service) TryPublish(courseID, instructorID uint) (*courseModels.Course, error) {
	var crs *courseModels.Course
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		crs, err = s.authorizeCourse(tx, courseID, instructorID)
		if err != nil {
			return err
		}

		var moduleCount int64
		if err := tx.Model(&courseModels.Module{}).
			Where("course_id = ?", courseID).
			Count(&moduleCount).Error; err != nil {
			return err
		}

		var lessonCount int64
		if err := tx.Model(&courseModels.Lesson{}).
			Where("module_id IN (?)", moduleIDs(tx, courseID)).
			Count(&lessonCount).Error; err != nil {
			return err
		}

		if moduleCount == 0 || lessonCount == 0 || crs.Price < 0 {
			return apperrors.ErrCourseIncomplete
		}

		crs.Published = true
		return tx.Save(crs).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return crs, nil
}

// DeleteCourse removes the course and everything under it: lessons first,
// then modules, then the course itself. Nothing may be left referencing the
// course id afterwards.
func (s *Service) DeleteCourse(courseID, instructorID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.authorizeCourse(tx, courseID, instructorID); err != nil {
			return err
		}
		if err := tx.Where("module_id IN (?)", moduleIDs(tx, courseID)).
			Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).
			Delete(&courseModels.Module{}).Error; err != nil {
			return err
		}
		return tx.Delete(&courseModels.Course{}, courseID).Error
	})
	return translate(err)
}

// DeleteModule removes the module and its lessons. Remaining module orders
// are not renumbered.
func (s *Service) DeleteModule(moduleID, instructorID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, _, err := s.authorizeModule(tx, moduleID, instructorID); err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", moduleID).
			Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&courseModels.Module{}, moduleID).Error
	})
	return translate(err)
}

// DeleteLesson removes a single lesson.
func (s *Service) DeleteLesson(lessonID, instructorID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.authorizeLesson(tx, lessonID, instructorID); err != nil {
			return err
		}
		return tx.Delete(&courseModels.Lesson{}, lessonID).Error
	})
	return translate(err)
}

// authorizeCourse is the single ownership check every mutating operation
// goes through. Module and lesson operations reach it by walking the
// reference chain upward, since neither stores the instructor directly.
func (s *Service) authorizeCourse(tx *gorm.DB, courseID, instructorID uint) (*courseModels.Course, error) {
	var crs courseModels.Course
	if err := tx.First(&crs, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if crs.InstructorID != instructorID {
		return nil, apperrors.ErrForbidden
	}
	return &crs, nil
}

func (s *Service) authorizeModule(tx *gorm.DB, moduleID, instructorID uint) (*courseModels.Module, *courseModels.Course, error) {
	var mod courseModels.Module
	if err := tx.First(&mod, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, err
	}
	crs, err := s.authorizeCourse(tx, mod.CourseID, instructorID)
	if err != nil {
		return nil, nil, err
	}
	return &mod, crs, nil
}

func (s *Service) authorizeLesson(tx *gorm.DB, lessonID, instructorID uint) (*courseModels.Lesson, error) {
	var lesson courseModels.Lesson
	if err := tx.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if _, _, err := s.authorizeModule(tx, lesson.ModuleID, instructorID); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// moduleIDs builds the subquery selecting module ids belonging to a course.
func moduleIDs(tx *gorm.DB, courseID uint) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).
		Model(&courseModels.Module{}).
		Select("id").
		Where("course_id = ?", courseID)
}

// translate maps storage-level failures onto the service taxonomy. A unique
// index violation means a concurrent append lost the race; the caller may
// retry the whole operation.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrConflict
	}
	return err
}
