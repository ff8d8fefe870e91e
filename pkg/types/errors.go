package types

import (
	"errors"
	"fmt"
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrStoreNotEmpty   = errors.New("store is not empty")
)

// Table operation errors. ValidationError, UniquenessError and ReferenceError
// unwrap to ErrValidation, ErrUniqueness and ErrReference respectively.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
	ErrValidation  = errors.New("validation failed")
	ErrUniqueness  = errors.New("uniqueness constraint violated")
	ErrReference   = errors.New("referenced entity does not exist")
)

// ValidationError reports a field that is missing or out of range.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// UniquenessError reports a value that is already taken by another row.
type UniquenessError struct {
	Entity string
	Field  string
	Value  string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func (e *UniquenessError) Unwrap() error { return ErrUniqueness }

// ReferenceError reports an identifier that resolves to no row.
type ReferenceError struct {
	Entity string // entity being written
	Field  string // referencing field, e.g. "farmer_id"
	ID     int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %d does not exist", e.Entity, e.Field, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrReference }

// IsUserError reports whether err is caused by caller input rather than by
// the storage layer.
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUniqueness) ||
		errors.Is(err, ErrReference) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrStoreNotEmpty)
}
