package leave

import "errors"

var (
	ErrRecordNotFound      = errors.New("leave record not found")
	ErrNonPositiveHours    = errors.New("leave span yields no leave hours")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrBalanceNotFound     = errors.New("leave balance not found")
	ErrNotPending          = errors.New("leave record is no longer pending")
)
