package services

import "errors"

var (
	ErrUnauthenticated  = errors.New("please login to continue")
	ErrNotConfirmed     = errors.New("action not confirmed")
	ErrForbidden        = errors.New("only the seller can change this product")
	ErrBusy             = errors.New("another change is still in progress")
	ErrStoreUnavailable = errors.New("product store unavailable")

	ErrBadCreds         = errors.New("invalid email or password")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWeakPassword     = errors.New("password should be at least 6 characters")
	ErrInvalidEmail     = errors.New("the email address is badly formatted")
	ErrInvalidName      = errors.New("name must be 1-50 characters")
	ErrInvalidPhone     = errors.New("phone number is not valid")
)
