// Package common contains sentinel errors shared across LiftLog components.
package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound       = errors.New("not found")
	ErrorDuplicateEmail = errors.New("email already used")

	// service specific errors
	ErrorInternal           = errors.New("internal error")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorInvalidInput       = errors.New("invalid input")

	// auth-specific errors
	ErrorUnauthenticated = errors.New("not authenticated")
	ErrorInvalidToken    = errors.New("invalid token")

	// catalog-specific errors
	ErrorUpstreamUnavailable = errors.New("upstream unavailable")
)
