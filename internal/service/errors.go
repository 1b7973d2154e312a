package service

import "errors"

// The closed error set surfaced to callers. Handlers map these to HTTP
// status codes; everything else is treated as a retryable storage failure.
var (
	ErrQuotaExhausted     = errors.New("subscription quota exhausted")
	ErrInvalidToken       = errors.New("invalid or expired session token")
	ErrInterviewTerminal  = errors.New("interview already completed or cancelled")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrSessionExists      = errors.New("an active session already exists for this interview")
	ErrSessionConflict    = errors.New("session already closed with a different outcome")
	ErrSubmissionConflict = errors.New("a concurrent submission already advanced this interview")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
