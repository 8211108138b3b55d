package attendance

import "time"

// Record is one attendance row for an employee-company relation on a given
// date. A clock-in creates the row with checkout equal to checkin and zero
// work hours; the matching clock-out patches checkout and work hours in
// place, so at most one row exists per relation per date.
type Record struct {
	ID               string
	RelationID       string
	Date             string // YYYY-MM-DD, first 10 chars of the checkin timestamp
	CheckinTime      time.Time
	CheckoutTime     time.Time
	CheckinLocation  string
	CheckoutLocation string
	WorkHours        float64
	Corrected        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Mode distinguishes the two scan directions.
type Mode string

const (
	ModeIn  Mode = "in"
	ModeOut Mode = "out"
)

func (m Mode) Valid() bool {
	return m == ModeIn || m == ModeOut
}
