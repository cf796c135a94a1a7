package service

import "errors"

// Service errors. The handler layer maps these to HTTP status codes.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidVitals      = errors.New("vitals fields must be numeric")
	ErrInvalidDate        = errors.New("invalid date format")
	ErrInvalidScope       = errors.New("scope must be \"all\" or an owned report id")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrGrantNotFound      = errors.New("share grant not found")
	ErrForbidden          = errors.New("access denied")
)
