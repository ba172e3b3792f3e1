package catalog

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string, n int) models.User {
	t.Helper()
	user := models.User{
		ExternalID: fmt.Sprintf("ext-%s-%d", role, n),
		Email:      fmt.Sprintf("%s%d@example.com", role, n),
		Name:       fmt.Sprintf("%s %d", role, n),
		Role:       role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, svc *Service, instructorID uint, price float64) *courseModels.Course {
	t.Helper()
	crs, err := svc.CreateCourse(instructorID, "Go from Scratch", "Learn Go", "programming", price)
	require.NoError(t, err)
	return crs
}

func TestAppendModuleAssignsIncreasingOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	instructor := seedUser(t, db, models.RoleInstructor, 1)
	crs := seedCourse(t, svc, instructor.ID, 10)

	for i := 1; i <= 5; i++ {
		mod, err := svc.AppendModule(crs.ID, instructor.ID, fmt.Sprintf("Module %d", i), "")
		require.NoError(t, err)
		assert.Equal(t, i, mod.OrderIndex)
	}
}

func TestAppendModuleLeavesGapAfterDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	instructor := seedUser(t, db, models.RoleInstructor, 1)
	crs := seedCourse(t, svc, instructor.ID, 10)

	var second *courseModels.Module
	for i := 1; i <= 3; i++ {
		mod, err := svc.AppendModule(crs.ID, instructor.ID, fmt.Sprintf("Module %d", i), "")
		require.NoError(t, err)
		if i == 2 {
			second = mod
		}
	}

	require.NoError(t, svc.DeleteModule(second.ID, instructor.ID))

	// No renumbering: the next append goes after the surviving max.
	mod, err := svc.AppendModule(crs.ID, instructor.ID, "Module 4", "")
	require.NoError(t, err)
	assert.Equal(t, 4, mod.OrderIndex)

	var orders []int
	require.NoError(t, db.Model(&courseModels.Module{}).
		Where("course_id = ?", crs.ID).
		Order("order_index asc").
		Pluck("order_index", &orders).Error)
	assert.Equal(t, []int{1, 3, 4}, orders)
}

func TestAppendModuleConcurrentOrdersUnique(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	instructor := seedUser(t, db, models.RoleInstructor, 1)
	crs := seedCourse(t, svc, instructor.ID, 10)

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// ErrConflict means a lost append race; the whole operation is
			// safe to retry.
			for {
				mod, err := svc.AppendModule(crs.ID, instructor.ID, fmt.Sprintf("Module %d", n), "")
				if errors.Is(err, apperrors.ErrConflict) {
					continue
				}
				if !assert.NoError(t, err) {
					return
				}
				results <- mod.OrderIndex
				return
			}
		}(i)
	}

	wg.Wait()
	close(results)

	seen := make(map[int]bool)
	for order := range results {
		assert.False(t, seen[order], "order %d assigned twice", order)
		seen[order] = true
	}
	assert.Len(t, seen, workers)
	for i := 1; i <= workers; i++ {
		assert.True(t, seen[i], "order %d missing", i)
	}
}

func TestAppendModuleFailures(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	instructor := seedUser(t, db, models.RoleInstructor, 1)
	other := seedUser(t, db, models.RoleInstructor, 2)
	crs := seedCourse(t, svc, instructor.ID, 10)

	_, err := svc.AppendModule(9999, instructor.ID, "Module", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.AppendModule(crs.ID, other.ID, "Module", "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAppendLessonClampsDuration(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	instructor := seedUser(t, db, models.RoleInstructor, 1)
	crs := seedCourse(t, svc, instructor.ID, 10)
	mod, err := svc.AppendModule(crs.ID, instructor.ID, "Module 1", "")
	require.NoError(t, err)

	lesson, err := svc.AppendLesson(mod.ID, instructor.ID, "Intro", -30, "/uploads/a.mp4", "")
	require.NoError(t, err)
	assert.Equal(t, 0, lesson.Duration)
	assert.Equal(t, 1, lesson.OrderIndex)

	lesson2, err := svc.AppendLesson(mod.ID, instructor.ID, "Setup", 120, "/uploads/b.mp4", "")
	require.NoError(t, err)
	assert.Equal(t, 120, lesson2.Duration)
	assert.Equal(t, 2, lesson2.OrderIndex)
}

func TestTryPublishGate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	instructor := seedUser(t, db, models.RoleInstructor, 1)
	other := seedUser(t, db, models.RoleInstructor, 2)
	crs := seedCourse(t, svc, instructor.ID, 49.99)

	_, err := svc.TryPublish(9999, instructor.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.TryPublish(crs.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// No modules at all
	_, err = svc.TryPublish(crs.ID, instructor.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseIncomplete)

	// Modules but no lesson in any of them
	mod, err := svc.AppendModule(crs.ID, instructor.ID, "Module 1", "")
	require.NoError(t, err)
	_, err = svc.TryPublish(crs.ID, instructor.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseIncomplete)

	// One lesson satisfies the gate
	_, err = svc.AppendLesson(mod.ID, instructor.ID, "Intro", 60, "/uploads/a.mp4", "")
	require.NoError(t, err)

	published, err := svc.TryPublish(crs.ID, instructor.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)

	purchasable, err := svc.IsPurchasable(db, crs.ID)
	require.NoError(t, err)
	assert.True(t, purchasable)
}

func TestIsPurchasable(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	instructor := seedUser(t, db, models.RoleInstructor, 1)
	crs := seedCourse(t, svc, instructor.ID, 10)

	purchasable, err := svc.IsPurchasable(db, crs.ID)
	require.NoError(t, err)
	assert.False(t, purchasable, "unpublished course must not be purchasable")

	purchasable, err = svc.IsPurchasable(db, 9999)
	require.NoError(t, err)
	assert.False(t, purchasable, "missing course must not be purchasable")
}

func TestDeleteCourseCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	instructor := seedUser(t, db, models.RoleInstructor, 1)
	crs := seedCourse(t, svc, instructor.ID, 10)

	mod1, err := svc.AppendModule(crs.ID, instructor.ID, "Module 1", "")
	require.NoError(t, err)
	mod2, err := svc.AppendModule(crs.ID, instructor.ID, "Module 2", "")
	require.NoError(t, err)

	_, err = svc.AppendLesson(mod1.ID, instructor.ID, "L1", 60, "/uploads/1.mp4", "")
	require.NoError(t, err)
	_, err = svc.AppendLesson(mod1.ID, instructor.ID, "L2", 60, "/uploads/2.mp4", "")
	require.NoError(t, err)
	_, err = svc.AppendLesson(mod2.ID, instructor.ID, "L3", 60, "/uploads/3.mp4", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(crs.ID, instructor.ID))

	var moduleCount int64
	require.NoError(t, db.Model(&courseModels.Module{}).Where("course_id = ?", crs.ID).Count(&moduleCount).Error)
	assert.Zero(t, moduleCount)

	var lessonCount int64
	require.NoError(t, db.Model(&courseModels.Lesson{}).
		Where("module_id IN ?", []uint{mod1.ID, mod2.ID}).
		Count(&lessonCount).Error)
	assert.Zero(t, lessonCount)

	var courseCount int64
	require.NoError(t, db.Model(&courseModels.Course{}).Where("id = ?", crs.ID).Count(&courseCount).Error)
	assert.Zero(t, courseCount)
}

func TestDeleteWalksOwnershipChain(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	instructor := seedUser(t, db, models.RoleInstructor, 1)
	other := seedUser(t, db, models.RoleInstructor, 2)
	crs := seedCourse(t, svc, instructor.ID, 10)

	mod, err := svc.AppendModule(crs.ID, instructor.ID, "Module 1", "")
	require.NoError(t, err)
	lesson, err := svc.AppendLesson(mod.ID, instructor.ID, "Intro", 60, "/uploads/a.mp4", "")
	require.NoError(t, err)

	// Neither module nor lesson stores the instructor; the check must walk
	// lesson -> module -> course -> instructor.
	assert.ErrorIs(t, svc.DeleteLesson(lesson.ID, other.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteModule(mod.ID, other.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteCourse(crs.ID, other.ID), apperrors.ErrForbidden)

	assert.ErrorIs(t, svc.DeleteLesson(9999, instructor.ID), apperrors.ErrNotFound)

	require.NoError(t, svc.DeleteLesson(lesson.ID, instructor.ID))
	var lessonCount int64
	require.NoError(t, db.Model(&courseModels.Lesson{}).Where("module_id = ?", mod.ID).Count(&lessonCount).Error)
	assert.Zero(t, lessonCount)
}
