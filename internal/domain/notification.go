package domain

import (
	"context"
	"strings"
	"time"
)

// Notification is a free-text message tied to a user and a gym.
type Notification struct {
	ID      int64
	UserID  int64
	GymID   int64
	Message string
	SentAt  time.Time
}

// NotificationRepository captures persistence operations for notifications.
type NotificationRepository interface {
	List(ctx context.Context) ([]Notification, error)
	Create(ctx context.Context, notification Notification) (*Notification, error)
	Get(ctx context.Context, notificationID int64) (*Notification, error)
	Delete(ctx context.Context, notificationID int64) error
}

// UserExistenceChecker reports whether a user id references a live row.
type UserExistenceChecker interface {
	GetDetail(ctx context.Context, userID int64) (*UserDetail, error)
}

// NotificationService orchestrates notification CRUD.
type NotificationService struct {
	notifications NotificationRepository
	users         UserExistenceChecker
	gyms          GymRepository
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(notifications NotificationRepository, users UserExistenceChecker, gyms GymRepository) *NotificationService {
	return &NotificationService{notifications: notifications, users: users, gyms: gyms}
}

// List returns every notification.
func (s *NotificationService) List(ctx context.Context) ([]Notification, error) {
	return s.notifications.List(ctx)
}

// Create validates the user and gym references, then stores the message.
func (s *NotificationService) Create(ctx context.Context, userID, gymID int64, message string) (*Notification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, Invalid("Message is required.")
	}

	user, err := s.users.GetDetail(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, Invalid("The referenced user does not exist.")
	}

	gym, err := s.gyms.Get(ctx, gymID)
	if err != nil {
		return nil, err
	}
	if gym == nil {
		return nil, Invalid("The referenced gym does not exist.")
	}

	return s.notifications.Create(ctx, Notification{
		UserID:  userID,
		GymID:   gymID,
		Message: message,
		SentAt:  time.Now().UTC(),
	})
}

// Get returns an owned notification.
func (s *NotificationService) Get(ctx context.Context, userID, notificationID int64) (*Notification, error) {
	notification, err := s.notifications.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotFound
	}
	if notification.UserID != userID {
		return nil, ErrNotOwner
	}
	return notification, nil
}

// Delete removes an owned notification.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID int64) error {
	notification, err := s.notifications.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotFound
	}
	if notification.UserID != userID {
		return ErrNotOwner
	}
	return s.notifications.Delete(ctx, notificationID)
}
