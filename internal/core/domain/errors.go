package domain

import "errors"

// Common domain errors
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Request lifecycle errors
var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOutOfScope        = errors.New("request block not in cleaner's assigned blocks")
	ErrProofMismatch     = errors.New("proof does not match request identifier")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// QR verification errors
var (
	ErrNoProofFound = errors.New("no QR code found in image")
	ErrInvalidImage = errors.New("image could not be decoded")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmailDomain = errors.New("please use a valid VIT email address")
	ErrCleanerInactive    = errors.New("cleaner account is inactive")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
)
