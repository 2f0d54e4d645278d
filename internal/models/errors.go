package models

import "errors"

var (
	// ErrValidation marks missing or malformed request input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an unresolvable product type, plan tier or content page.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks a storage write failure.
	ErrPersistence = errors.New("persistence failed")
	// ErrUpstreamUnavailable marks an unreachable or misconfigured external service.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
