package attendance

import (
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/geo"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/validator"
)

// ScanRequest is one decoded QR submission from the clock-in screen. The
// device either produced a position or a classified position error, never
// both.
type ScanRequest struct {
	SessionID     string     `json:"session_id"`
	Mode          Mode       `json:"mode"`
	Payload       string     `json:"payload"`
	Position      *geo.Point `json:"position,omitempty"`
	PositionError string     `json:"position_error,omitempty"`
}

func (r *ScanRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if validator.IsEmpty(r.SessionID) {
		validationErrors.AddError("session_id", "Session ID is required")
	}
	if !r.Mode.Valid() {
		validationErrors.AddError("mode", "Mode must be either in or out")
	}
	if validator.IsEmpty(r.Payload) {
		validationErrors.AddError("payload", "QR payload is required")
	}
	if r.Position == nil && validator.IsEmpty(r.PositionError) {
		validationErrors.AddError("position", "Device position or position error is required")
	}
	if r.PositionError != "" && !geo.PositionErrorClass(r.PositionError).Valid() {
		validationErrors.AddError("position_error", "Unknown position error class")
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

// StartSessionResponse carries the scan session token handed to the client
// before the camera opens.
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
}

// ScanResponse reports the reconciler outcome for a decoded QR.
type ScanResponse struct {
	State        string          `json:"state"`
	Message      string          `json:"message"`
	Record       *RecordResponse `json:"record,omitempty"`
	ErrorClass   string          `json:"error_class,omitempty"`
	HoldDuration int             `json:"hold_duration_seconds"`
}

// RecordResponse is the JSON shape of an attendance row.
type RecordResponse struct {
	ID               string  `json:"id"`
	RelationID       string  `json:"relation_id"`
	Date             string  `json:"date"`
	CheckinTime      string  `json:"checkin_time"`
	CheckoutTime     string  `json:"checkout_time"`
	CheckinLocation  string  `json:"checkin_location"`
	CheckoutLocation string  `json:"checkout_location"`
	WorkHours        float64 `json:"work_hours"`
	Corrected        bool    `json:"corrected"`
}

// ListRequest filters attendance history.
type ListRequest struct {
	RelationID string
	StartDate  string
	EndDate    string
	Limit      int
	Offset     int
}

func (r *ListRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if r.StartDate != "" && !validator.IsValidDate(r.StartDate) {
		validationErrors.AddError("start_date", "Start date must be in YYYY-MM-DD format")
	}
	if r.EndDate != "" && !validator.IsValidDate(r.EndDate) {
		validationErrors.AddError("end_date", "End date must be in YYYY-MM-DD format")
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

// CorrectionRequest is an administrative fix of a single attendance row.
type CorrectionRequest struct {
	CheckinTime  string `json:"checkin_time"`
	CheckoutTime string `json:"checkout_time"`
}

func (r *CorrectionRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if validator.IsEmpty(r.CheckinTime) {
		validationErrors.AddError("checkin_time", "Check-in time is required")
	} else if !validator.IsValidDateTime(r.CheckinTime) {
		validationErrors.AddError("checkin_time", "Check-in time must be in YYYY-MM-DD HH:MM:SS format")
	}
	if validator.IsEmpty(r.CheckoutTime) {
		validationErrors.AddError("checkout_time", "Check-out time is required")
	} else if !validator.IsValidDateTime(r.CheckoutTime) {
		validationErrors.AddError("checkout_time", "Check-out time must be in YYYY-MM-DD HH:MM:SS format")
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}
