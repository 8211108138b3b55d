package attendance

import "errors"

var (
	ErrNoPosition           = errors.New("device position is unavailable")
	ErrInvalidQRPayload     = errors.New("QR payload is not a coordinate pair")
	ErrUnknownLocation      = errors.New("scanned location does not belong to the company")
	ErrOutsideAllowedRadius = errors.New("device is outside the allowed clock-in radius")
	ErrNoCheckInRecord      = errors.New("no check-in record found for today")
	ErrAlreadyCheckedIn     = errors.New("already checked in today")
	ErrAlreadyCheckedOut    = errors.New("already checked out today")
	ErrRecordNotFound       = errors.New("attendance record not found")
	ErrRelationRequired     = errors.New("employee is not attached to a company")
)
