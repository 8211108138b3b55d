package auth

import "context"

type Service interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, string, int64, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context) (*ProfileResponse, error)
	ChangePassword(ctx context.Context, req *ChangePasswordRequest) error
	// ForgotPassword mails a temporary password. It reports success even
	// when the email is unknown so the endpoint cannot be used to probe
	// registered addresses.
	ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error
}
