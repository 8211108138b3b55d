package makeup

import "errors"

var (
	ErrRequestNotFound = errors.New("makeup clock request not found")
	ErrQuotaExhausted  = errors.New("makeup clock quota exhausted")
	ErrQuotaNotFound   = errors.New("makeup clock quota not found")
	ErrDateNotPast     = errors.New("makeup date must be a past date")
	ErrDateTooOld      = errors.New("makeup date must be within the last 7 days")
	ErrNotPending      = errors.New("makeup clock request is no longer pending")
)
