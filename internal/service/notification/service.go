package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/notification"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/jwt"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/sse"
	"github.com/hongchuan-tech/ams-backend-go/internal/service/identity"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	listLimit  = 50
)

type NotificationServiceImpl struct {
	notificationRepo notification.Repository
	hub              *sse.Hub
	jwtService       jwt.Service
	location         *time.Location
}

func NewNotificationService(
	notificationRepo notification.Repository,
	hub *sse.Hub,
	jwtService jwt.Service,
	location *time.Location,
) notification.Service {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		hub:              hub,
		jwtService:       jwtService,
		location:         location,
	}
}

// List implements notification.Service.
func (s *NotificationServiceImpl) List(ctx context.Context) ([]*notification.Response, error) {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.ListByRecipient(ctx, id.EmployeeID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]*notification.Response, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, s.toResponse(n))
	}
	return responses, nil
}

// UnreadCount implements notification.Service.
func (s *NotificationServiceImpl) UnreadCount(ctx context.Context) (*notification.UnreadCountResponse, error) {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.notificationRepo.CountUnread(ctx, id.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return &notification.UnreadCountResponse{Count: count}, nil
}

// MarkRead implements notification.Service.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, notificationID string) error {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.RecipientID != id.EmployeeID {
		return notification.ErrNotRecipient
	}

	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead implements notification.Service.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context) error {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.notificationRepo.MarkAllRead(ctx, id.EmployeeID)
}

// StreamToken implements notification.Service.
func (s *NotificationServiceImpl) StreamToken(ctx context.Context) (*notification.StreamTokenResponse, error) {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	token, expiresIn, err := s.jwtService.GenerateStreamToken(id.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate stream token: %w", err)
	}
	return &notification.StreamTokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

// Notify implements notification.Service.
func (s *NotificationServiceImpl) Notify(ctx context.Context, recipientID string, notificationType notification.Type, title string, message string) error {
	created, err := s.notificationRepo.Create(ctx, &notification.Notification{
		RecipientID: recipientID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
	})
	if err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	s.hub.Publish(recipientID, sse.Event{
		EmployeeID: recipientID,
		Event:      sse.EventNotification,
		Data:       s.toResponse(created),
	})

	if count, err := s.notificationRepo.CountUnread(ctx, recipientID); err == nil {
		s.hub.Publish(recipientID, sse.Event{
			EmployeeID: recipientID,
			Event:      sse.EventUnreadCount,
			Data:       notification.UnreadCountResponse{Count: count},
		})
	}
	return nil
}

func (s *NotificationServiceImpl) toResponse(n *notification.Notification) *notification.Response {
	return &notification.Response{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.In(s.location).Format(timeLayout),
	}
}
