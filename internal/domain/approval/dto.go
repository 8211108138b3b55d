package approval

import (
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/validator"
)

// PendingItem is one undecided request waiting on the caller, flattened so
// the approval screen does not need a second fetch per row.
type PendingItem struct {
	ApprovalID     string  `json:"approval_id"`
	RequestKind    string  `json:"request_kind"`
	RequestID      string  `json:"request_id"`
	ApplicantID    string  `json:"applicant_id"`
	ApplicantName  string  `json:"applicant_name"`
	Summary        string  `json:"summary"`
	RequestedHours float64 `json:"requested_hours,omitempty"`
	RequestedAt    string  `json:"requested_at"`
}

type DecisionRequest struct {
	Comment string `json:"comment"`
}

// ValidateReject enforces the mandatory rejection comment. Approvals accept
// an empty comment.
func (r *DecisionRequest) ValidateReject() error {
	if validator.IsEmpty(r.Comment) {
		return ErrCommentRequired
	}
	return nil
}

type BatchAction string

const (
	BatchApprove BatchAction = "approve"
	BatchReject  BatchAction = "reject"
)

type BatchRequest struct {
	ApprovalIDs []string `json:"approval_ids"`
	Action      string   `json:"action"`
	Comment     string   `json:"comment"`
}

func (r *BatchRequest) Validate() error {
	if len(r.ApprovalIDs) == 0 {
		return ErrEmptyBatch
	}
	action := BatchAction(r.Action)
	if action != BatchApprove && action != BatchReject {
		return ErrUnknownBatchAction
	}
	if action == BatchReject && validator.IsEmpty(r.Comment) {
		return ErrCommentRequired
	}
	return nil
}

// BatchResponse reports the aggregate outcome. Individual failures do not
// abort the rest of the batch.
type BatchResponse struct {
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed,omitempty"`
}

type DecisionResponse struct {
	ApprovalID string  `json:"approval_id"`
	Status     string  `json:"status"`
	Comment    *string `json:"comment,omitempty"`
	ApprovedAt string  `json:"approved_at"`
}
