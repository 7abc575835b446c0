package domain

import "errors"

var (
	// ErrValidation covers malformed requests: unknown enum values, empty
	// channel sets, conflicting targeting modes.
	ErrValidation = errors.New("validation failed")

	// ErrNoTargets means targeting resolved to zero recipients.
	ErrNoTargets = errors.New("no targets resolved")

	// ErrNotFound is returned for absent rows and for rows owned by another
	// user; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps store/transaction failures. No partial rows
	// survive a failed batch.
	ErrPersistence = errors.New("persistence failure")
)
