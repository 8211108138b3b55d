package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/attendance"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, relation_id, date, checkin_time, checkout_time,
	checkin_location, checkout_location, work_hours, corrected, created_at, updated_at`

func scanAttendance(row pgx.Row) (*attendance.Record, error) {
	var record attendance.Record
	err := row.Scan(
		&record.ID, &record.RelationID, &record.Date, &record.CheckinTime, &record.CheckoutTime,
		&record.CheckinLocation, &record.CheckoutLocation, &record.WorkHours, &record.Corrected,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, record *attendance.Record) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, relation_id, date, checkin_time, checkout_time,
			checkin_location, checkout_location, work_hours, corrected
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.RelationID,
		record.Date,
		record.CheckinTime,
		record.CheckoutTime,
		record.CheckinLocation,
		record.CheckoutLocation,
		record.WorkHours,
		record.Corrected,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return record, nil
}

// GetByRelationAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByRelationAndDate(ctx context.Context, relationID string, date string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`SELECT %s FROM attendance_records WHERE relation_id = $1 AND date = $2`, attendanceColumns)

	record, err := scanAttendance(q.QueryRow(ctx, query, relationID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return record, nil
}

// PatchCheckout implements attendance.Repository.
func (a *attendanceRepository) PatchCheckout(ctx context.Context, record *attendance.Record) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET checkout_time = $1, checkout_location = $2, work_hours = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		record.CheckoutTime,
		record.CheckoutLocation,
		record.WorkHours,
		record.ID,
	).Scan(&record.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to patch attendance checkout: %w", err)
	}
	return record, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`SELECT %s FROM attendance_records WHERE id = $1`, attendanceColumns)

	record, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return record, nil
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, req *attendance.ListRequest) ([]*attendance.Record, int, error) {
	conditions := []string{"relation_id = $1"}
	args := []interface{}{req.RelationID}
	return a.list(ctx, conditions, args, req)
}

// ListByCompany implements attendance.Repository.
func (a *attendanceRepository) ListByCompany(ctx context.Context, companyID string, req *attendance.ListRequest) ([]*attendance.Record, int, error) {
	conditions := []string{"relation_id IN (SELECT id FROM employee_company_relations WHERE company_id = $1)"}
	args := []interface{}{companyID}
	return a.list(ctx, conditions, args, req)
}

func (a *attendanceRepository) list(ctx context.Context, conditions []string, args []interface{}, req *attendance.ListRequest) ([]*attendance.Record, int, error) {
	q := GetQuerier(ctx, a.db)

	if req.StartDate != "" {
		args = append(args, req.StartDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if req.EndDate != "" {
		args = append(args, req.EndDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendance_records WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 31
	}
	args = append(args, limit, req.Offset)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_records
		WHERE %s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []*attendance.Record
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	return records, total, rows.Err()
}

// UpdateTimes implements attendance.Repository.
func (a *attendanceRepository) UpdateTimes(ctx context.Context, id string, record *attendance.Record) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET date = $1, checkin_time = $2, checkout_time = $3, work_hours = $4,
			corrected = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		record.Date,
		record.CheckinTime,
		record.CheckoutTime,
		record.WorkHours,
		record.Corrected,
		id,
	).Scan(&record.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update attendance record: %w", err)
	}
	record.ID = id
	return record, nil
}

// ListOpenBefore implements attendance.Repository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date string) ([]*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_records
		WHERE date < $1 AND checkout_time = checkin_time
		ORDER BY date DESC
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance records: %w", err)
	}
	defer rows.Close()

	var records []*attendance.Record
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
