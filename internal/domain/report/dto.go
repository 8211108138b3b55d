package report

import (
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/validator"
)

// SummaryRequest bounds the attendance summary to one month per company.
type SummaryRequest struct {
	Month string // YYYY-MM
}

func (r *SummaryRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if validator.IsEmpty(r.Month) {
		validationErrors.AddError("month", "Month is required")
	} else if !validator.IsValidMonth(r.Month) {
		validationErrors.AddError("month", "Month must be in YYYY-MM format")
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

// SummaryRow aggregates one employee's month.
type SummaryRow struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	PresentDays    int     `json:"present_days"`
	TotalWorkHours float64 `json:"total_work_hours"`
	LeaveHours     float64 `json:"leave_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
}

type AnomalyKind string

const (
	AnomalyMissingCheckout AnomalyKind = "missing_checkout"
	AnomalyShortDay        AnomalyKind = "short_day"
	AnomalyCorrectedRecord AnomalyKind = "corrected_record"
)

// AnomalyRow flags one attendance row needing attention.
type AnomalyRow struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	Kind         string  `json:"kind"`
	WorkHours    float64 `json:"work_hours"`
	Detail       string  `json:"detail"`
}
