package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the gateway, guard, and handlers.
var (
	// ErrUnauthenticated marks a missing, expired, or rejected token. The
	// gateway only surfaces it; clearing the session is the guard's job.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrNoSession marks a request without a stored session record.
	ErrNoSession = errors.New("no active session")

	// ErrNotFound marks a backend 404 (e.g. deleting an already-gone record).
	ErrNotFound = errors.New("resource not found")

	// ErrBackendUnavailable marks timeouts and unreachable hosts. Surfaced
	// with a wake-up hint: the backend is allowed to cold-start slowly.
	ErrBackendUnavailable = errors.New("prediction service unavailable")
)

// ValidationError carries a structured rejection the backend attached to a
// 4xx response (bad registration fields and the like). The detail is shown
// to the user verbatim next to the offending form.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// OperationError marks a domain operation the backend refused, such as
// predicting before any model has been trained. It never affects the session.
type OperationError struct {
	Op     string
	Detail string
}

func (e *OperationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s failed", e.Op)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Detail)
}
