package response

import (
	"errors"
	"net/http"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/approval"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/attendance"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/auth"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/leave"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/makeup"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/notification"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/overtime"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/scan"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/validator"
	"github.com/hongchuan-tech/ams-backend-go/internal/service/identity"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, identity.ErrNoIdentity):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, identity.ErrNoActiveRelation):
		Forbidden(w, "No active company membership")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		Unauthorized(w, "Invalid or expired refresh token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrWrongOldPassword):
		BadRequest(w, "Old password does not match", nil)

	// User domain errors
	case errors.Is(err, user.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrRelationNotFound):
		NotFound(w, "Company membership not found")
	case errors.Is(err, company.ErrRelationInactive):
		Forbidden(w, "Company membership is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRelationRequired):
		Forbidden(w, "No active company membership")

	// Scan session errors
	case errors.Is(err, scan.ErrSessionNotFound):
		NotFound(w, "Scan session not found or expired")
	case errors.Is(err, scan.ErrSessionConsumed):
		Conflict(w, "Scan session has already decoded a code")
	case errors.Is(err, scan.ErrSessionFinished):
		Conflict(w, "Scan session is finished")
	case errors.Is(err, scan.ErrSessionOwnership):
		Forbidden(w, "Scan session belongs to another user")

	// Leave domain errors
	case errors.Is(err, leave.ErrRecordNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrNonPositiveHours):
		BadRequest(w, "Leave span yields no leave hours", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrNotPending):
		Conflict(w, "Leave record is no longer pending")

	// Overtime domain errors
	case errors.Is(err, overtime.ErrRecordNotFound):
		NotFound(w, "Overtime record not found")
	case errors.Is(err, overtime.ErrNonPositiveHours):
		BadRequest(w, "Overtime span yields no overtime hours", nil)
	case errors.Is(err, overtime.ErrNotPending):
		Conflict(w, "Overtime record is no longer pending")
	case errors.Is(err, overtime.ErrNotOwner):
		Forbidden(w, "Overtime record belongs to another employee")

	// Makeup clock domain errors
	case errors.Is(err, makeup.ErrRequestNotFound):
		NotFound(w, "Makeup clock request not found")
	case errors.Is(err, makeup.ErrQuotaExhausted):
		BadRequest(w, "Makeup clock quota exhausted", nil)
	case errors.Is(err, makeup.ErrQuotaNotFound):
		NotFound(w, "Makeup clock quota not found")
	case errors.Is(err, makeup.ErrDateNotPast):
		BadRequest(w, "Makeup date must be a past date", nil)
	case errors.Is(err, makeup.ErrDateTooOld):
		BadRequest(w, "Makeup date must be within the last 7 days", nil)
	case errors.Is(err, makeup.ErrNotPending):
		Conflict(w, "Makeup clock request is no longer pending")

	// Approval domain errors
	case errors.Is(err, approval.ErrRecordNotFound):
		NotFound(w, "Approval record not found")
	case errors.Is(err, approval.ErrNotApprover):
		Forbidden(w, "Approval record belongs to another approver")
	case errors.Is(err, approval.ErrAlreadyDecided):
		Conflict(w, "Approval record has already been decided")
	case errors.Is(err, approval.ErrCommentRequired):
		BadRequest(w, "A comment is required when rejecting", nil)
	case errors.Is(err, approval.ErrEmptyBatch):
		BadRequest(w, "Batch decision contains no approval ids", nil)
	case errors.Is(err, approval.ErrUnknownBatchAction):
		BadRequest(w, "Batch action must be approve or reject", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotRecipient):
		Forbidden(w, "Notification belongs to another employee")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
