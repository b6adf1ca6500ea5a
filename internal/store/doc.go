// Package store provides abstractions and interfaces for data persistence.
//
// The interfaces here are implemented by the platform/postgres package.
// Uniqueness invariants (one account per email, one profile per account,
// one follow edge per pair) are ultimately enforced by database
// constraints; implementations translate constraint violations into the
// ErrDuplicate family so callers can present friendlier errors without
// being exposed to races between check and write.
package store
