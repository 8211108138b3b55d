package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/overtime"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.Repository {
	return &overtimeRepository{db: db}
}

const overtimeColumns = `id, relation_id, date, start_time, end_time, overtime_hours,
	reason, compensation_type, status, created_at, updated_at`

func scanOvertime(row pgx.Row) (*overtime.Record, error) {
	var record overtime.Record
	err := row.Scan(
		&record.ID, &record.RelationID, &record.Date, &record.StartTime, &record.EndTime,
		&record.OvertimeHours, &record.Reason, &record.CompensationType, &record.Status,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create implements overtime.Repository.
func (o *overtimeRepository) Create(ctx context.Context, record *overtime.Record) (*overtime.Record, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO overtime_records (
			id, relation_id, date, start_time, end_time, overtime_hours,
			reason, compensation_type, status
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.RelationID,
		record.Date,
		record.StartTime,
		record.EndTime,
		record.OvertimeHours,
		record.Reason,
		record.CompensationType,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create overtime record: %w", err)
	}
	return record, nil
}

// GetByID implements overtime.Repository.
func (o *overtimeRepository) GetByID(ctx context.Context, id string) (*overtime.Record, error) {
	q := GetQuerier(ctx, o.db)

	query := fmt.Sprintf(`SELECT %s FROM overtime_records WHERE id = $1`, overtimeColumns)

	record, err := scanOvertime(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, overtime.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get overtime record: %w", err)
	}
	return record, nil
}

// ListByRelation implements overtime.Repository.
func (o *overtimeRepository) ListByRelation(ctx context.Context, relationID string) ([]*overtime.Record, error) {
	q := GetQuerier(ctx, o.db)

	query := fmt.Sprintf(`
		SELECT %s FROM overtime_records
		WHERE relation_id = $1
		ORDER BY date DESC, created_at DESC
	`, overtimeColumns)

	rows, err := q.Query(ctx, query, relationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime records: %w", err)
	}
	defer rows.Close()

	var records []*overtime.Record
	for rows.Next() {
		record, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateStatus implements overtime.Repository.
func (o *overtimeRepository) UpdateStatus(ctx context.Context, id string, status overtime.Status) (*overtime.Record, error) {
	q := GetQuerier(ctx, o.db)

	query := fmt.Sprintf(`
		UPDATE overtime_records
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s
	`, overtimeColumns)

	record, err := scanOvertime(q.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, overtime.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update overtime status: %w", err)
	}
	return record, nil
}
