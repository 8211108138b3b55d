package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/leave"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

const leaveColumns = `id, relation_id, leave_type, start_time, end_time, leave_hours,
	leave_reason, substitute_employee_id, status, created_at, updated_at`

func scanLeave(row pgx.Row) (*leave.Record, error) {
	var record leave.Record
	err := row.Scan(
		&record.ID, &record.RelationID, &record.LeaveType, &record.StartTime, &record.EndTime,
		&record.LeaveHours, &record.LeaveReason, &record.SubstituteEmployeeID, &record.Status,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create implements leave.Repository.
func (l *leaveRepository) Create(ctx context.Context, record *leave.Record) (*leave.Record, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_records (
			id, relation_id, leave_type, start_time, end_time, leave_hours,
			leave_reason, substitute_employee_id, status
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.RelationID,
		record.LeaveType,
		record.StartTime,
		record.EndTime,
		record.LeaveHours,
		record.LeaveReason,
		record.SubstituteEmployeeID,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create leave record: %w", err)
	}
	return record, nil
}

// GetByID implements leave.Repository.
func (l *leaveRepository) GetByID(ctx context.Context, id string) (*leave.Record, error) {
	q := GetQuerier(ctx, l.db)

	query := fmt.Sprintf(`SELECT %s FROM leave_records WHERE id = $1`, leaveColumns)

	record, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get leave record: %w", err)
	}
	return record, nil
}

// ListByRelation implements leave.Repository.
func (l *leaveRepository) ListByRelation(ctx context.Context, relationID string) ([]*leave.Record, error) {
	q := GetQuerier(ctx, l.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_records
		WHERE relation_id = $1
		ORDER BY created_at DESC
	`, leaveColumns)

	rows, err := q.Query(ctx, query, relationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	defer rows.Close()

	var records []*leave.Record
	for rows.Next() {
		record, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateStatus implements leave.Repository.
func (l *leaveRepository) UpdateStatus(ctx context.Context, id string, status leave.Status) (*leave.Record, error) {
	q := GetQuerier(ctx, l.db)

	query := fmt.Sprintf(`
		UPDATE leave_records
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s
	`, leaveColumns)

	record, err := scanLeave(q.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update leave status: %w", err)
	}
	return record, nil
}

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

const balanceColumns = `id, employee_id, year, leave_type, total_hours, used_hours, created_at, updated_at`

func scanBalance(row pgx.Row) (*leave.Balance, error) {
	var balance leave.Balance
	err := row.Scan(
		&balance.ID, &balance.EmployeeID, &balance.Year, &balance.LeaveType,
		&balance.TotalHours, &balance.UsedHours, &balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// GetByEmployeeTypeYear implements leave.BalanceRepository.
func (b *leaveBalanceRepository) GetByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType leave.Type, year int) (*leave.Balance, error) {
	q := GetQuerier(ctx, b.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
	`, balanceColumns)

	balance, err := scanBalance(q.QueryRow(ctx, query, employeeID, leaveType, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return balance, nil
}

// ListByEmployeeYear implements leave.BalanceRepository.
func (b *leaveBalanceRepository) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]*leave.Balance, error) {
	q := GetQuerier(ctx, b.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type
	`, balanceColumns)

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []*leave.Balance
	for rows.Next() {
		balance, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, balance)
	}
	return balances, rows.Err()
}

// AddUsedHours implements leave.BalanceRepository.
func (b *leaveBalanceRepository) AddUsedHours(ctx context.Context, id string, hours float64) error {
	q := GetQuerier(ctx, b.db)

	tag, err := q.Exec(ctx,
		`UPDATE leave_balances SET used_hours = used_hours + $1, updated_at = NOW() WHERE id = $2`,
		hours, id,
	)
	if err != nil {
		return fmt.Errorf("failed to add used leave hours: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}
