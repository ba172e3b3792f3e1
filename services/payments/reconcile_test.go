package payments

import (
	"fmt"
	"sync"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/apperrors"
	"lms/services/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db         *gorm.DB
	catalog    *catalog.Service
	payments   *Service
	student    models.User
	instructor models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)

	cat := catalog.NewService(db)
	f := &fixture{
		db:       db,
		catalog:  cat,
		payments: NewService(db, cat),
	}

	f.instructor = models.User{ExternalID: "ext-instructor", Email: "instructor@example.com", Name: "Ada", Role: models.RoleInstructor}
	require.NoError(t, db.Create(&f.instructor).Error)
	f.student = models.User{ExternalID: "ext-student", Email: "student@example.com", Name: "Linus", Role: models.RoleStudent}
	require.NoError(t, db.Create(&f.student).Error)

	return f
}

// publishedCourse builds a sellable course: one module, one lesson, published.
func (f *fixture) publishedCourse(t *testing.T, price float64) *courseModels.Course {
	t.Helper()
	crs, err := f.catalog.CreateCourse(f.instructor.ID, "Go from Scratch", "Learn Go", "programming", price)
	require.NoError(t, err)
	mod, err := f.catalog.AppendModule(crs.ID, f.instructor.ID, "Module 1", "")
	require.NoError(t, err)
	_, err = f.catalog.AppendLesson(mod.ID, f.instructor.ID, "Intro", 60, "/uploads/a.mp4", "")
	require.NoError(t, err)
	published, err := f.catalog.TryPublish(crs.ID, f.instructor.ID)
	require.NoError(t, err)
	return published
}

func (f *fixture) enrollmentCount(t *testing.T, courseID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&courseModels.Enrollment{}).
		Where("student_id = ? AND course_id = ?", f.student.ID, courseID).
		Count(&count).Error)
	return count
}

func (f *fixture) paymentCount(t *testing.T, courseID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Payment{}).
		Where("student_id = ? AND course_id = ?", f.student.ID, courseID).
		Count(&count).Error)
	return count
}

func TestReconcileCreatesEnrollmentLedgerAndCounters(t *testing.T) {
	f := newFixture(t)
	crs := f.publishedCourse(t, 49.99)

	result, err := f.payments.Reconcile(f.student.ID, crs.ID, "ORDER-1", 49.99)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.AlreadyEnrolled)
	require.NotNil(t, result.Enrollment)
	assert.Equal(t, 0, result.Enrollment.Progress)
	assert.False(t, result.Enrollment.Completed)

	require.NotNil(t, result.Payment)
	assert.InDelta(t, 49.99, result.Payment.Amount, 1e-9)
	assert.Equal(t, models.PaymentStatusCompleted, result.Payment.Status)
	assert.Equal(t, f.instructor.ID, result.Payment.InstructorID)
	assert.Equal(t, "ORDER-1", result.Payment.OrderID)

	var studentProfile models.UserProfile
	require.NoError(t, f.db.Where("user_id = ?", f.student.ID).First(&studentProfile).Error)
	assert.EqualValues(t, 1, studentProfile.TotalCoursesEnrolled)

	var instrProfile models.InstructorProfile
	require.NoError(t, f.db.Where("user_id = ?", f.instructor.ID).First(&instrProfile).Error)
	assert.EqualValues(t, 1, instrProfile.TotalStudents)
	assert.InDelta(t, 49.99, instrProfile.RevenueGenerated, 1e-9)
}

func TestReconcileRecordsProviderAmountNotListPrice(t *testing.T) {
	f := newFixture(t)
	crs := f.publishedCourse(t, 49.99)

	// A promotion: the provider confirmed less than the list price. The
	// ledger carries the provider's figure.
	result, err := f.payments.Reconcile(f.student.ID, crs.ID, "ORDER-PROMO", 39.99)
	require.NoError(t, err)
	assert.InDelta(t, 39.99, result.Payment.Amount, 1e-9)

	var instrProfile models.InstructorProfile
	require.NoError(t, f.db.Where("user_id = ?", f.instructor.ID).First(&instrProfile).Error)
	assert.InDelta(t, 39.99, instrProfile.RevenueGenerated, 1e-9)
}

func TestReconcileIsIdempotent(t *testing.T) {
	f := newFixture(t)
	crs := f.publishedCourse(t, 49.99)

	first, err := f.payments.Reconcile(f.student.ID, crs.ID, "ORDER-1", 49.99)
	require.NoError(t, err)
	require.False(t, first.AlreadyEnrolled)

	// A retried callback arrives with a different order id. Same pair, so
	// nothing new may be written.
	second, err := f.payments.Reconcile(f.student.ID, crs.ID, "ORDER-2", 49.99)
	require.NoError(t, err)
	assert.True(t, second.AlreadyEnrolled)
	assert.Nil(t, second.Payment)
	require.NotNil(t, second.Enrollment)
	assert.Equal(t, first.Enrollment.ID, second.Enrollment.ID)

	assert.EqualValues(t, 1, f.enrollmentCount(t, crs.ID))
	assert.EqualValues(t, 1, f.paymentCount(t, crs.ID))

	var studentProfile models.UserProfile
	require.NoError(t, f.db.Where("user_id = ?", f.student.ID).First(&studentProfile).Error)
	assert.EqualValues(t, 1, studentProfile.TotalCoursesEnrolled)

	var instrProfile models.InstructorProfile
	require.NoError(t, f.db.Where("user_id = ?", f.instructor.ID).First(&instrProfile).Error)
	assert.EqualValues(t, 1, instrProfile.TotalStudents)
	assert.InDelta(t, 49.99, instrProfile.RevenueGenerated, 1e-9)
}

func TestReconcileConcurrentSamePair(t *testing.T) {
	f := newFixture(t)
	crs := f.publishedCourse(t, 49.99)

	const callers = 5
	var wg sync.WaitGroup
	var mu sync.Mutex
	creators := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			result, err := f.payments.Reconcile(f.student.ID, crs.ID, fmt.Sprintf("ORDER-%d", n), 49.99)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			if !result.AlreadyEnrolled {
				creators++
			}
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, creators, "exactly one caller may create the enrollment")
	assert.EqualValues(t, 1, f.enrollmentCount(t, crs.ID))
	assert.EqualValues(t, 1, f.paymentCount(t, crs.ID))
}

func TestReconcileRejectsUnpurchasableCourse(t *testing.T) {
	f := newFixture(t)
	crs, err := f.catalog.CreateCourse(f.instructor.ID, "Draft", "Not published", "programming", 20)
	require.NoError(t, err)

	_, err = f.payments.Reconcile(f.student.ID, crs.ID, "ORDER-1", 20)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotPurchasable)

	assert.EqualValues(t, 0, f.enrollmentCount(t, crs.ID))
	assert.EqualValues(t, 0, f.paymentCount(t, crs.ID))
}

func TestReconcileMissingEntities(t *testing.T) {
	f := newFixture(t)
	crs := f.publishedCourse(t, 49.99)

	_, err := f.payments.Reconcile(9999, crs.ID, "ORDER-1", 49.99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.payments.Reconcile(f.student.ID, 9999, "ORDER-1", 49.99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
