// Package apperrors defines the failure taxonomy shared by the catalog and
// payments services. Every failure is returned to the caller; nothing in the
// services logs, retries, or compensates.
package apperrors

import "errors"

var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the acting user does not own the target entity.
	ErrForbidden = errors.New("forbidden")

	// ErrCourseIncomplete means the publish gate is not satisfied.
	ErrCourseIncomplete = errors.New("course incomplete")

	// ErrCourseNotPurchasable means reconciliation was attempted against an
	// unpublished or otherwise unsellable course.
	ErrCourseNotPurchasable = errors.New("course not purchasable")

	// ErrConflict means a concurrent-write race was detected. The whole
	// operation is safe to retry.
	ErrConflict = errors.New("storage conflict")
)
