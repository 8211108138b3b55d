package leave

import "time"

type Type string

const (
	TypeAnnual       Type = "annual"
	TypeSick         Type = "sick"
	TypePersonal     Type = "personal"
	TypeMarriage     Type = "marriage"
	TypeBereavement  Type = "bereavement"
	TypeMaternity    Type = "maternity"
	TypePaternity    Type = "paternity"
	TypeCompensatory Type = "compensatory"
)

var AllTypes = []Type{
	TypeAnnual, TypeSick, TypePersonal, TypeMarriage,
	TypeBereavement, TypeMaternity, TypePaternity, TypeCompensatory,
}

func (t Type) Valid() bool {
	for _, knownType := range AllTypes {
		if t == knownType {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

type Record struct {
	ID                   string
	RelationID           string
	LeaveType            Type
	StartTime            time.Time
	EndTime              time.Time
	LeaveHours           float64
	LeaveReason          string
	SubstituteEmployeeID *string
	Status               Status
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Balance tracks an employee's entitlement for one leave type in one year.
// Remaining is always derived from total and used, never stored.
type Balance struct {
	ID         string
	EmployeeID string
	Year       int
	LeaveType  Type
	TotalHours float64
	UsedHours  float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (b *Balance) RemainingHours() float64 {
	return b.TotalHours - b.UsedHours
}
