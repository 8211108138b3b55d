package approval

import "time"

type RequestKind string

const (
	KindLeave    RequestKind = "leave"
	KindOvertime RequestKind = "overtime"
	KindMakeup   RequestKind = "makeup"
)

func (k RequestKind) Valid() bool {
	return k == KindLeave || k == KindOvertime || k == KindMakeup
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Record ties one leave, overtime or makeup request to the relation that
// must decide it. The underlying request row keeps its own status; this row
// records who decided and why.
type Record struct {
	ID                 string
	RequestKind        RequestKind
	RequestID          string
	ApproverRelationID string
	Status             Status
	Comment            *string
	ApprovedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
