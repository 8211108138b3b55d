package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/auth"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/email"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/jwt"
	"github.com/hongchuan-tech/ams-backend-go/internal/service/identity"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employeeRepo user.EmployeeRepository
	relationRepo company.RelationRepository
	jwtService   jwt.Service
	emailService email.Service
}

func NewAuthService(
	employeeRepo user.EmployeeRepository,
	relationRepo company.RelationRepository,
	jwtService jwt.Service,
	emailService email.Service,
) auth.Service {
	return &AuthServiceImpl{
		employeeRepo: employeeRepo,
		relationRepo: relationRepo,
		jwtService:   jwtService,
		emailService: emailService,
	}
}

// Login implements auth.Service.
func (s *AuthServiceImpl) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return nil, "", 0, err
	}

	employee, err := s.employeeRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, user.ErrEmployeeNotFound) {
			return nil, "", 0, auth.ErrInvalidCredentials
		}
		return nil, "", 0, fmt.Errorf("failed to look up employee: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", 0, auth.ErrInvalidCredentials
	}

	var relationID, companyID *string
	relation, err := s.relationRepo.GetActiveByEmployeeID(ctx, employee.EmployeeID)
	if err == nil {
		relationID = &relation.ID
		companyID = &relation.CompanyID
	} else if !errors.Is(err, company.ErrRelationNotFound) {
		return nil, "", 0, fmt.Errorf("failed to look up company relation: %w", err)
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(employee.EmployeeID, relationID, companyID, employee.Role)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(employee.EmployeeID)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	resp := &auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   accessExpiresAt,
		Profile:     s.toProfile(employee, relationID, companyID),
	}
	return resp, refreshToken, refreshExpiresAt, nil
}

// Refresh implements auth.Service.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*auth.RefreshResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return nil, auth.ErrTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidRefreshToken
	}
	if tokenType, ok := token.Get("type"); !ok || tokenType != "refresh" {
		return nil, auth.ErrInvalidRefreshToken
	}

	idVal, ok := token.Get("user_id")
	if !ok {
		return nil, auth.ErrInvalidRefreshToken
	}
	employeeID, ok := idVal.(string)
	if !ok || employeeID == "" {
		return nil, auth.ErrInvalidRefreshToken
	}

	employee, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, auth.ErrInvalidRefreshToken
	}

	var relationID, companyID *string
	relation, err := s.relationRepo.GetActiveByEmployeeID(ctx, employee.EmployeeID)
	if err == nil {
		relationID = &relation.ID
		companyID = &relation.CompanyID
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(employee.EmployeeID, relationID, companyID, employee.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &auth.RefreshResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.Service.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

// Profile implements auth.Service.
func (s *AuthServiceImpl) Profile(ctx context.Context) (*auth.ProfileResponse, error) {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.GetByEmployeeID(ctx, id.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}

	var relationID, companyID *string
	if id.RelationID != "" {
		relationID = &id.RelationID
	}
	if id.CompanyID != "" {
		companyID = &id.CompanyID
	}

	profile := s.toProfile(employee, relationID, companyID)
	return &profile, nil
}

// ChangePassword implements auth.Service.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, req *auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	id, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	employee, err := s.employeeRepo.GetByEmployeeID(ctx, id.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to look up employee: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.OldPassword)) != nil {
		return auth.ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.employeeRepo.UpdatePassword(ctx, employee.EmployeeID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// ForgotPassword implements auth.Service.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, req *auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	employee, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrEmployeeNotFound) {
			// Report success so the endpoint cannot probe registered addresses.
			return nil
		}
		return fmt.Errorf("failed to look up employee: %w", err)
	}

	temporary, err := generateTemporaryPassword()
	if err != nil {
		return fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(temporary), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash temporary password: %w", err)
	}

	if err := s.employeeRepo.UpdatePassword(ctx, employee.EmployeeID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.emailService.SendTemporaryPassword(req.Email, employee.Name, temporary); err != nil {
		// Password already rotated; the employee can retry the flow.
		slog.Error("Failed to send temporary password email", "employee_id", employee.EmployeeID, "error", err)
		return fmt.Errorf("failed to send temporary password email: %w", err)
	}
	return nil
}

func (s *AuthServiceImpl) toProfile(employee user.Employee, relationID, companyID *string) auth.ProfileResponse {
	permissions := make(map[string]bool)
	for permission, granted := range user.PermissionMap(employee.Role) {
		permissions[string(permission)] = granted
	}

	emailAddr := ""
	if employee.Email != nil {
		emailAddr = *employee.Email
	}

	return auth.ProfileResponse{
		EmployeeID:  employee.EmployeeID,
		Name:        employee.Name,
		Email:       emailAddr,
		Role:        string(employee.Role),
		RelationID:  relationID,
		CompanyID:   companyID,
		Permissions: permissions,
	}
}

func generateTemporaryPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
