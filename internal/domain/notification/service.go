package notification

import "context"

type Service interface {
	List(ctx context.Context) ([]*Response, error)
	UnreadCount(ctx context.Context) (*UnreadCountResponse, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context) error
	// StreamToken issues the short-lived token the SSE endpoint accepts in
	// its query string.
	StreamToken(ctx context.Context) (*StreamTokenResponse, error)
	// Notify stores the notification and pushes it to the recipient's open
	// streams. Called by the request and approval services.
	Notify(ctx context.Context, recipientID string, notificationType Type, title string, message string) error
}
