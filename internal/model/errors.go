package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Battle request errors
	ErrRequestNotFound = errors.New("battle request not found")
	ErrInvalidStatus   = errors.New("invalid request status")
	ErrInvalidDate     = errors.New("invalid requested date")
	ErrInvalidSlot     = errors.New("requested time is not a bookable slot")
)
