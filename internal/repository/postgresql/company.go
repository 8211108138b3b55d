package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.Repository {
	return &companyRepository{db: db}
}

// GetByID implements company.Repository.
func (c *companyRepository) GetByID(ctx context.Context, id string) (*company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, latitude, longitude, timezone, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var comp company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&comp.ID, &comp.Name, &comp.Location.Latitude, &comp.Location.Longitude,
		&comp.Timezone, &comp.CreatedAt, &comp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &comp, nil
}

// UpdateLocation implements company.Repository.
func (c *companyRepository) UpdateLocation(ctx context.Context, id string, latitude float64, longitude float64) (*company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET latitude = $1, longitude = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, latitude, longitude, timezone, created_at, updated_at
	`

	var comp company.Company
	err := q.QueryRow(ctx, query, latitude, longitude, id).Scan(
		&comp.ID, &comp.Name, &comp.Location.Latitude, &comp.Location.Longitude,
		&comp.Timezone, &comp.CreatedAt, &comp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to update company location: %w", err)
	}
	return &comp, nil
}

type relationRepository struct {
	db *database.DB
}

func NewRelationRepository(db *database.DB) company.RelationRepository {
	return &relationRepository{db: db}
}

const relationColumns = `id, employee_id, company_id, role, manager_id, active, joined_at, created_at, updated_at`

func scanRelation(row pgx.Row) (*company.Relation, error) {
	var relation company.Relation
	err := row.Scan(
		&relation.ID, &relation.EmployeeID, &relation.CompanyID, &relation.Role,
		&relation.ManagerID, &relation.Active, &relation.JoinedAt,
		&relation.CreatedAt, &relation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &relation, nil
}

// GetByID implements company.RelationRepository.
func (r *relationRepository) GetByID(ctx context.Context, id string) (*company.Relation, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employee_company_relations WHERE id = $1`, relationColumns)

	relation, err := scanRelation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrRelationNotFound
		}
		return nil, fmt.Errorf("failed to get relation: %w", err)
	}
	return relation, nil
}

// GetActiveByEmployeeID implements company.RelationRepository.
func (r *relationRepository) GetActiveByEmployeeID(ctx context.Context, employeeID string) (*company.Relation, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM employee_company_relations
		WHERE employee_id = $1 AND active = TRUE
		ORDER BY joined_at DESC
		LIMIT 1
	`, relationColumns)

	relation, err := scanRelation(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrRelationNotFound
		}
		return nil, fmt.Errorf("failed to get active relation: %w", err)
	}
	return relation, nil
}

// ListByCompany implements company.RelationRepository.
func (r *relationRepository) ListByCompany(ctx context.Context, companyID string) ([]*company.Relation, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM employee_company_relations
		WHERE company_id = $1 AND active = TRUE
		ORDER BY joined_at
	`, relationColumns)

	return r.listRelations(ctx, q, query, companyID)
}

// ListByManager implements company.RelationRepository.
func (r *relationRepository) ListByManager(ctx context.Context, managerRelationID string) ([]*company.Relation, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM employee_company_relations
		WHERE manager_id = $1 AND active = TRUE
		ORDER BY joined_at
	`, relationColumns)

	return r.listRelations(ctx, q, query, managerRelationID)
}

func (r *relationRepository) listRelations(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]*company.Relation, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list relations: %w", err)
	}
	defer rows.Close()

	var relations []*company.Relation
	for rows.Next() {
		relation, err := scanRelation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relation: %w", err)
		}
		relations = append(relations, relation)
	}
	return relations, rows.Err()
}
