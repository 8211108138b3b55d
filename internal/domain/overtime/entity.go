package overtime

import "time"

type CompensationType string

const (
	CompensationPay          CompensationType = "pay"
	CompensationCompensatory CompensationType = "compensatory"
	CompensationMixed        CompensationType = "mixed"
)

func (c CompensationType) Valid() bool {
	return c == CompensationPay || c == CompensationCompensatory || c == CompensationMixed
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

type Record struct {
	ID               string
	RelationID       string
	Date             string // YYYY-MM-DD
	StartTime        string // HH:MM
	EndTime          string // HH:MM
	OvertimeHours    float64
	Reason           string
	CompensationType CompensationType
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
