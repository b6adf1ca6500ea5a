package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic form of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrProfileNotFound indicates that the requested profile does not exist.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

	// ErrEducationNotFound indicates that the education entry does not exist
	// or belongs to a different profile.
	ErrEducationNotFound = fmt.Errorf("%w: education", ErrNotFound)

	// ErrWorkExperienceNotFound indicates that the work item does not exist
	// or belongs to a different profile.
	ErrWorkExperienceNotFound = fmt.Errorf("%w: work experience", ErrNotFound)

	// ErrSkillNotFound indicates that the skill does not exist or belongs
	// to a different profile.
	ErrSkillNotFound = fmt.Errorf("%w: skill", ErrNotFound)

	// ErrFollowNotFound indicates that the follow edge does not exist.
	ErrFollowNotFound = fmt.Errorf("%w: follow", ErrNotFound)

	// ErrPostNotFound indicates that the post does not exist or is
	// soft-deleted.
	ErrPostNotFound = fmt.Errorf("%w: post", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already
	// exists, whether or not that account is active.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrProfileExists indicates that the account already owns a profile.
	ErrProfileExists = fmt.Errorf("%w: profile", ErrDuplicate)

	// ErrFollowExists indicates that the follow edge already exists.
	ErrFollowExists = fmt.Errorf("%w: follow", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
