package makeup

import (
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	Date         string  `json:"date"`
	MakeupType   string  `json:"makeup_type"`
	CheckinTime  *string `json:"checkin_time,omitempty"`
	CheckoutTime *string `json:"checkout_time,omitempty"`
	Reason       string  `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if validator.IsEmpty(r.Date) {
		validationErrors.AddError("date", "Date is required")
	} else if !validator.IsValidDate(r.Date) {
		validationErrors.AddError("date", "Date must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.MakeupType) {
		validationErrors.AddError("makeup_type", "Makeup type is required")
	} else if !Type(r.MakeupType).Valid() {
		validationErrors.AddError("makeup_type", "Makeup type must be checkin, checkout or both")
	}
	if validator.IsEmpty(r.Reason) {
		validationErrors.AddError("reason", "Reason is required")
	}

	makeupType := Type(r.MakeupType)
	needsCheckin := makeupType == TypeCheckin || makeupType == TypeBoth
	needsCheckout := makeupType == TypeCheckout || makeupType == TypeBoth

	if needsCheckin {
		if r.CheckinTime == nil || validator.IsEmpty(*r.CheckinTime) {
			validationErrors.AddError("checkin_time", "Check-in time is required for this makeup type")
		} else if !validator.IsValidClockTime(*r.CheckinTime) {
			validationErrors.AddError("checkin_time", "Check-in time must be in HH:MM format")
		}
	}
	if needsCheckout {
		if r.CheckoutTime == nil || validator.IsEmpty(*r.CheckoutTime) {
			validationErrors.AddError("checkout_time", "Check-out time is required for this makeup type")
		} else if !validator.IsValidClockTime(*r.CheckoutTime) {
			validationErrors.AddError("checkout_time", "Check-out time must be in HH:MM format")
		}
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

type RequestResponse struct {
	ID           string  `json:"id"`
	RelationID   string  `json:"relation_id"`
	Date         string  `json:"date"`
	MakeupType   string  `json:"makeup_type"`
	CheckinTime  *string `json:"checkin_time,omitempty"`
	CheckoutTime *string `json:"checkout_time,omitempty"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

type QuotaResponse struct {
	Year      int `json:"year"`
	Total     int `json:"total"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}
