package leave

import (
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	LeaveType            string  `json:"leave_type"`
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	LeaveReason          string  `json:"leave_reason"`
	SubstituteEmployeeID *string `json:"substitute_employee_id,omitempty"`
}

func (r *ApplyRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if validator.IsEmpty(r.LeaveType) {
		validationErrors.AddError("leave_type", "Leave type is required")
	} else if !Type(r.LeaveType).Valid() {
		validationErrors.AddError("leave_type", "Unknown leave type")
	}
	if validator.IsEmpty(r.StartTime) {
		validationErrors.AddError("start_time", "Start time is required")
	} else if !validator.IsValidDateTime(r.StartTime) {
		validationErrors.AddError("start_time", "Start time must be in YYYY-MM-DD HH:MM:SS format")
	}
	if validator.IsEmpty(r.EndTime) {
		validationErrors.AddError("end_time", "End time is required")
	} else if !validator.IsValidDateTime(r.EndTime) {
		validationErrors.AddError("end_time", "End time must be in YYYY-MM-DD HH:MM:SS format")
	}
	if validator.IsEmpty(r.LeaveReason) {
		validationErrors.AddError("leave_reason", "Leave reason is required")
	}
	if r.SubstituteEmployeeID != nil && !validator.IsValidEmployeeID(*r.SubstituteEmployeeID) {
		validationErrors.AddError("substitute_employee_id", "Invalid substitute employee ID")
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

type RecordResponse struct {
	ID                   string  `json:"id"`
	RelationID           string  `json:"relation_id"`
	LeaveType            string  `json:"leave_type"`
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	LeaveHours           float64 `json:"leave_hours"`
	LeaveReason          string  `json:"leave_reason"`
	SubstituteEmployeeID *string `json:"substitute_employee_id,omitempty"`
	Status               string  `json:"status"`
	CreatedAt            string  `json:"created_at"`
}

type BalanceResponse struct {
	Year           int     `json:"year"`
	LeaveType      string  `json:"leave_type"`
	TotalHours     float64 `json:"total_hours"`
	UsedHours      float64 `json:"used_hours"`
	RemainingHours float64 `json:"remaining_hours"`
}
