package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/approval"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type approvalRepository struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) approval.Repository {
	return &approvalRepository{db: db}
}

const approvalColumns = `id, request_kind, request_id, approver_relation_id, status,
	comment, approved_at, created_at, updated_at`

func scanApproval(row pgx.Row) (*approval.Record, error) {
	var record approval.Record
	err := row.Scan(
		&record.ID, &record.RequestKind, &record.RequestID, &record.ApproverRelationID,
		&record.Status, &record.Comment, &record.ApprovedAt, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create implements approval.Repository.
func (a *approvalRepository) Create(ctx context.Context, record *approval.Record) (*approval.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO approval_records (
			id, request_kind, request_id, approver_relation_id, status
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.RequestKind,
		record.RequestID,
		record.ApproverRelationID,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create approval record: %w", err)
	}
	return record, nil
}

// GetByID implements approval.Repository.
func (a *approvalRepository) GetByID(ctx context.Context, id string) (*approval.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`SELECT %s FROM approval_records WHERE id = $1`, approvalColumns)

	record, err := scanApproval(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, approval.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get approval record: %w", err)
	}
	return record, nil
}

// ListPendingByApprover implements approval.Repository.
func (a *approvalRepository) ListPendingByApprover(ctx context.Context, approverRelationID string) ([]*approval.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s FROM approval_records
		WHERE approver_relation_id = $1 AND status = 'pending'
		ORDER BY created_at
	`, approvalColumns)

	rows, err := q.Query(ctx, query, approverRelationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	defer rows.Close()

	var records []*approval.Record
	for rows.Next() {
		record, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Decide implements approval.Repository.
func (a *approvalRepository) Decide(ctx context.Context, record *approval.Record) (*approval.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		UPDATE approval_records
		SET status = $1, comment = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING %s
	`, approvalColumns)

	decided, err := scanApproval(q.QueryRow(ctx, query, record.Status, record.Comment, record.ApprovedAt, record.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, approval.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to record approval decision: %w", err)
	}
	return decided, nil
}
