package auth

import (
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if validator.IsEmpty(r.EmployeeID) {
		validationErrors.AddError("employee_id", "Employee ID is required")
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		validationErrors.AddError("employee_id", "Invalid employee ID")
	}
	if validator.IsEmpty(r.Password) {
		validationErrors.AddError("password", "Password is required")
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresAt   int64           `json:"expires_at"`
	Profile     ProfileResponse `json:"profile"`
}

// ProfileResponse is the session identity the client keeps: who is logged
// in, the active relation, and the permission map that gates screens.
type ProfileResponse struct {
	EmployeeID  string          `json:"employee_id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	RelationID  *string         `json:"relation_id,omitempty"`
	CompanyID   *string         `json:"company_id,omitempty"`
	Permissions map[string]bool `json:"permissions"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if validator.IsEmpty(r.OldPassword) {
		validationErrors.AddError("old_password", "Old password is required")
	}
	if validator.IsEmpty(r.NewPassword) {
		validationErrors.AddError("new_password", "New password is required")
	} else if len(r.NewPassword) < 8 {
		validationErrors.AddError("new_password", "New password must be at least 8 characters")
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	validationErrors := validator.ValidationErrors{}

	if validator.IsEmpty(r.Email) {
		validationErrors.AddError("email", "Email is required")
	} else if !validator.IsValidEmail(r.Email) {
		validationErrors.AddError("email", "Invalid email address")
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}
