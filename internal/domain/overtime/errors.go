package overtime

import "errors"

var (
	ErrRecordNotFound   = errors.New("overtime record not found")
	ErrNonPositiveHours = errors.New("overtime span yields no overtime hours")
	ErrNotPending       = errors.New("overtime record is no longer pending")
	ErrNotOwner         = errors.New("overtime record belongs to another employee")
)
