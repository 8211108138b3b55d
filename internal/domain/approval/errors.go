package approval

import "errors"

var (
	ErrRecordNotFound     = errors.New("approval record not found")
	ErrNotApprover        = errors.New("approval record belongs to another approver")
	ErrAlreadyDecided     = errors.New("approval record has already been decided")
	ErrCommentRequired    = errors.New("a comment is required when rejecting")
	ErrEmptyBatch         = errors.New("batch decision contains no approval ids")
	ErrUnknownBatchAction = errors.New("batch action must be approve or reject")
)
