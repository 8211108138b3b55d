package company

import "context"

type Service interface {
	GetOwn(ctx context.Context) (*CompanyResponse, error)
	UpdateLocation(ctx context.Context, req *UpdateLocationRequest) (*CompanyResponse, error)
	// QRCode returns the payload the clock-in poster should encode for the
	// caller's company.
	QRCode(ctx context.Context) (*QRCodeResponse, error)
	ListMembers(ctx context.Context) ([]*RelationResponse, error)
}
