package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/makeup"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type makeupRepository struct {
	db *database.DB
}

func NewMakeupRepository(db *database.DB) makeup.Repository {
	return &makeupRepository{db: db}
}

const makeupColumns = `id, relation_id, date, makeup_type, checkin_time, checkout_time,
	reason, status, created_at, updated_at`

func scanMakeup(row pgx.Row) (*makeup.Request, error) {
	var request makeup.Request
	err := row.Scan(
		&request.ID, &request.RelationID, &request.Date, &request.MakeupType,
		&request.CheckinTime, &request.CheckoutTime, &request.Reason, &request.Status,
		&request.CreatedAt, &request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Create implements makeup.Repository.
func (m *makeupRepository) Create(ctx context.Context, request *makeup.Request) (*makeup.Request, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		INSERT INTO makeup_requests (
			id, relation_id, date, makeup_type, checkin_time, checkout_time, reason, status
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.RelationID,
		request.Date,
		request.MakeupType,
		request.CheckinTime,
		request.CheckoutTime,
		request.Reason,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create makeup request: %w", err)
	}
	return request, nil
}

// GetByID implements makeup.Repository.
func (m *makeupRepository) GetByID(ctx context.Context, id string) (*makeup.Request, error) {
	q := GetQuerier(ctx, m.db)

	query := fmt.Sprintf(`SELECT %s FROM makeup_requests WHERE id = $1`, makeupColumns)

	request, err := scanMakeup(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeup.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get makeup request: %w", err)
	}
	return request, nil
}

// ListByRelation implements makeup.Repository.
func (m *makeupRepository) ListByRelation(ctx context.Context, relationID string) ([]*makeup.Request, error) {
	q := GetQuerier(ctx, m.db)

	query := fmt.Sprintf(`
		SELECT %s FROM makeup_requests
		WHERE relation_id = $1
		ORDER BY created_at DESC
	`, makeupColumns)

	rows, err := q.Query(ctx, query, relationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list makeup requests: %w", err)
	}
	defer rows.Close()

	var requests []*makeup.Request
	for rows.Next() {
		request, err := scanMakeup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan makeup request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

// UpdateStatus implements makeup.Repository.
func (m *makeupRepository) UpdateStatus(ctx context.Context, id string, status makeup.Status) (*makeup.Request, error) {
	q := GetQuerier(ctx, m.db)

	query := fmt.Sprintf(`
		UPDATE makeup_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s
	`, makeupColumns)

	request, err := scanMakeup(q.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeup.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to update makeup status: %w", err)
	}
	return request, nil
}

type makeupQuotaRepository struct {
	db *database.DB
}

func NewMakeupQuotaRepository(db *database.DB) makeup.QuotaRepository {
	return &makeupQuotaRepository{db: db}
}

// GetByEmployeeYear implements makeup.QuotaRepository.
func (m *makeupQuotaRepository) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (*makeup.Quota, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		SELECT id, employee_id, year, total, used, updated_at
		FROM makeup_quotas
		WHERE employee_id = $1 AND year = $2
	`

	var quota makeup.Quota
	err := q.QueryRow(ctx, query, employeeID, year).Scan(
		&quota.ID, &quota.EmployeeID, &quota.Year, &quota.Total, &quota.Used, &quota.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeup.ErrQuotaNotFound
		}
		return nil, fmt.Errorf("failed to get makeup quota: %w", err)
	}
	return &quota, nil
}

// IncrementUsed implements makeup.QuotaRepository.
func (m *makeupQuotaRepository) IncrementUsed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, m.db)

	tag, err := q.Exec(ctx,
		`UPDATE makeup_quotas SET used = used + 1, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to consume makeup quota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return makeup.ErrQuotaNotFound
	}
	return nil
}

// ResetAll implements makeup.QuotaRepository. Seeding is idempotent per
// employee and year.
func (m *makeupQuotaRepository) ResetAll(ctx context.Context, year int, total int) error {
	q := GetQuerier(ctx, m.db)

	query := `
		INSERT INTO makeup_quotas (id, employee_id, year, total, used)
		SELECT gen_random_uuid(), employee_id, $1, $2, 0 FROM employees
		ON CONFLICT (employee_id, year) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, year, total); err != nil {
		return fmt.Errorf("failed to reset makeup quotas: %w", err)
	}
	return nil
}
