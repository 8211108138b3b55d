package company

import (
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Timezone  string  `json:"timezone"`
}

type UpdateLocationRequest struct {
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
}

func (r *UpdateLocationRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if r.Latitude == nil {
		validationErrors.AddError("lat", "Latitude is required")
	} else if *r.Latitude < -90 || *r.Latitude > 90 {
		validationErrors.AddError("lat", "Latitude must be between -90 and 90")
	}
	if r.Longitude == nil {
		validationErrors.AddError("lng", "Longitude is required")
	} else if *r.Longitude < -180 || *r.Longitude > 180 {
		validationErrors.AddError("lng", "Longitude must be between -180 and 180")
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

// QRCodeResponse is the payload the clock-in poster encodes. The payload is
// the company coordinate rendered as "lat, lng" so a scan can be verified
// offline against the same anchor.
type QRCodeResponse struct {
	Payload   string `json:"payload"`
	RenewedAt string `json:"renewed_at"`
}

type RelationResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	CompanyID  string  `json:"company_id"`
	Role       string  `json:"role"`
	ManagerID  *string `json:"manager_id,omitempty"`
	Active     bool    `json:"active"`
}
