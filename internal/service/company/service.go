package company

import (
	"context"
	"fmt"
	"time"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
	"github.com/hongchuan-tech/ams-backend-go/internal/service/identity"
)

const timeLayout = "2006-01-02 15:04:05"

type CompanyServiceImpl struct {
	companyRepo  company.Repository
	relationRepo company.RelationRepository
	location     *time.Location
}

func NewCompanyService(
	companyRepo company.Repository,
	relationRepo company.RelationRepository,
	location *time.Location,
) company.Service {
	return &CompanyServiceImpl{
		companyRepo:  companyRepo,
		relationRepo: relationRepo,
		location:     location,
	}
}

// GetOwn implements company.Service.
func (s *CompanyServiceImpl) GetOwn(ctx context.Context) (*company.CompanyResponse, error) {
	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}

	comp, err := s.companyRepo.GetByID(ctx, id.CompanyID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(comp), nil
}

// UpdateLocation implements company.Service.
func (s *CompanyServiceImpl) UpdateLocation(ctx context.Context, req *company.UpdateLocationRequest) (*company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}
	if !id.HasPermission(user.PermissionCompanyManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	updated, err := s.companyRepo.UpdateLocation(ctx, id.CompanyID, *req.Latitude, *req.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to update company location: %w", err)
	}
	return s.toResponse(updated), nil
}

// QRCode implements company.Service. The poster payload is the company
// coordinate rendered exactly as scans will render it, so the membership
// check is a string-for-string anchor match.
func (s *CompanyServiceImpl) QRCode(ctx context.Context) (*company.QRCodeResponse, error) {
	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}
	if !id.HasPermission(user.PermissionCompanyManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	comp, err := s.companyRepo.GetByID(ctx, id.CompanyID)
	if err != nil {
		return nil, err
	}

	return &company.QRCodeResponse{
		Payload:   comp.Location.LocationString(),
		RenewedAt: time.Now().In(s.location).Format(timeLayout),
	}, nil
}

// ListMembers implements company.Service.
func (s *CompanyServiceImpl) ListMembers(ctx context.Context) ([]*company.RelationResponse, error) {
	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}
	if !id.HasPermission(user.PermissionAttendanceViewAll) {
		return nil, user.ErrManagerAccessRequired
	}

	relations, err := s.relationRepo.ListByCompany(ctx, id.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company members: %w", err)
	}

	responses := make([]*company.RelationResponse, 0, len(relations))
	for _, relation := range relations {
		responses = append(responses, &company.RelationResponse{
			ID:         relation.ID,
			EmployeeID: relation.EmployeeID,
			CompanyID:  relation.CompanyID,
			Role:       string(relation.Role),
			ManagerID:  relation.ManagerID,
			Active:     relation.Active,
		})
	}
	return responses, nil
}

func (s *CompanyServiceImpl) toResponse(comp *company.Company) *company.CompanyResponse {
	return &company.CompanyResponse{
		ID:        comp.ID,
		Name:      comp.Name,
		Latitude:  comp.Location.Latitude,
		Longitude: comp.Location.Longitude,
		Timezone:  comp.Timezone,
	}
}
