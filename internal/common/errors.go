// Package common defines shared constants and sentinel errors used across
// the cardtrack components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// A write would leave a card with two deliveries that have no recorded
	// return. The storage layer rejects this with a unique violation which is
	// mapped to this error.
	ErrOpenDeliveryConflict = errors.New("card already has an open delivery")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
