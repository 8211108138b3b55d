package overtime

import (
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Reason           string `json:"reason"`
	CompensationType string `json:"compensation_type"`
}

func (r *ApplyRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if validator.IsEmpty(r.Date) {
		validationErrors.AddError("date", "Date is required")
	} else if !validator.IsValidDate(r.Date) {
		validationErrors.AddError("date", "Date must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.StartTime) {
		validationErrors.AddError("start_time", "Start time is required")
	} else if !validator.IsValidClockTime(r.StartTime) {
		validationErrors.AddError("start_time", "Start time must be in HH:MM format")
	}
	if validator.IsEmpty(r.EndTime) {
		validationErrors.AddError("end_time", "End time is required")
	} else if !validator.IsValidClockTime(r.EndTime) {
		validationErrors.AddError("end_time", "End time must be in HH:MM format")
	}
	if validator.IsEmpty(r.Reason) {
		validationErrors.AddError("reason", "Reason is required")
	}
	if validator.IsEmpty(r.CompensationType) {
		validationErrors.AddError("compensation_type", "Compensation type is required")
	} else if !CompensationType(r.CompensationType).Valid() {
		validationErrors.AddError("compensation_type", "Compensation type must be pay, compensatory or mixed")
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

type RecordResponse struct {
	ID               string  `json:"id"`
	RelationID       string  `json:"relation_id"`
	Date             string  `json:"date"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	OvertimeHours    float64 `json:"overtime_hours"`
	Reason           string  `json:"reason"`
	CompensationType string  `json:"compensation_type"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
}
