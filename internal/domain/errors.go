package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the service-wide taxonomy. Handlers map these to
// HTTP status codes; anything not matching is treated as a storage fault.
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrRecordNotFound   = errors.New("time record not found")
	ErrBonusNotFound    = errors.New("bonus not found")

	// ErrInvalidToken covers a stale, mismatched, or absent QR code.
	ErrInvalidToken = errors.New("invalid qr code")

	// ErrNoActiveRecord means a check-out found nothing open in today's window.
	ErrNoActiveRecord = errors.New("no active record to complete")

	// ErrShiftAlreadyOpen means the employee already has an open record.
	ErrShiftAlreadyOpen = errors.New("an active record already exists")

	ErrShiftEndsBeforeStart = errors.New("clock-out must be after clock-in")

	ErrAlreadyAffiliated = errors.New("user is already attached to a company")

	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrValidation marks malformed client input; wrap it with Validationf.
	ErrValidation = errors.New("validation failed")
)

// Validationf builds a client-input error carrying ErrValidation in its chain.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// IsNotFound reports whether err is any of the absence sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrCompanyNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrBonusNotFound)
}
