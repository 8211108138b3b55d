package makeup

import "time"

type Type string

const (
	TypeCheckin  Type = "checkin"
	TypeCheckout Type = "checkout"
	TypeBoth     Type = "both"
)

func (t Type) Valid() bool {
	return t == TypeCheckin || t == TypeCheckout || t == TypeBoth
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request asks to materialize or patch a past attendance row the employee
// missed clocking for. Each approved request consumes one unit of the
// employee's yearly quota.
type Request struct {
	ID           string
	RelationID   string
	Date         string // YYYY-MM-DD, past only
	MakeupType   Type
	CheckinTime  *string // HH:MM
	CheckoutTime *string // HH:MM
	Reason       string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Quota is the yearly allowance of makeup requests per employee.
type Quota struct {
	ID         string
	EmployeeID string
	Year       int
	Total      int
	Used       int
	UpdatedAt  time.Time
}

func (q *Quota) Remaining() int {
	return q.Total - q.Used
}
