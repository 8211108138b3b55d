// Package identity resolves the caller from JWT claims into one immutable
// per-request value that services receive instead of reading ambient state.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
)

var (
	ErrNoIdentity       = errors.New("no authenticated identity in context")
	ErrNoActiveRelation = errors.New("caller has no active company relation")
)

// Identity is the caller of the current request.
type Identity struct {
	EmployeeID string
	RelationID string
	CompanyID  string
	Role       user.Role
}

// FromContext extracts the caller from the verified JWT claims.
func FromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["user_id"].(string)
	if !ok || employeeID == "" {
		return Identity{}, ErrNoIdentity
	}

	id := Identity{EmployeeID: employeeID}

	if relationID, ok := claims["relation_id"].(string); ok {
		id.RelationID = relationID
	}
	if companyID, ok := claims["company_id"].(string); ok {
		id.CompanyID = companyID
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = user.Role(role)
	}

	return id, nil
}

// RequireRelation extracts the caller and fails when they are not attached
// to a company. Attendance, leave and approval operations all act through
// the relation.
func RequireRelation(ctx context.Context) (Identity, error) {
	id, err := FromContext(ctx)
	if err != nil {
		return Identity{}, err
	}
	if id.RelationID == "" || id.CompanyID == "" {
		return Identity{}, ErrNoActiveRelation
	}
	return id, nil
}

// HasPermission reports whether the caller's role grants the permission.
func (i Identity) HasPermission(p user.Permission) bool {
	return user.HasPermission(i.Role, p)
}
