package notification

import "time"

type Type string

const (
	TypeRequestSubmitted Type = "request_submitted"
	TypeRequestApproved  Type = "request_approved"
	TypeRequestRejected  Type = "request_rejected"
	TypeSystem           Type = "system"
)

type Notification struct {
	ID          string
	RecipientID string // employee ID
	Type        Type
	Title       string
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}
