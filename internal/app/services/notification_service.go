package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/app/models/dto"
	"github.com/devconnect/backend/internal/pkg/apperrors"
	"github.com/devconnect/backend/internal/pkg/realtime"
)

// Notifier delivers a notification as a side effect of another operation.
// Delivery is best effort: failures are logged and never surface to the
// operation that triggered them.
type Notifier interface {
	Notify(ctx context.Context, notification *models.Notification)
}

// NotificationService defines the interface for notification operations
type NotificationService interface {
	Notifier
	GetNotifications(ctx context.Context, recipientID string) (*dto.NotificationListResponse, error)
	CreateNotification(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	MarkAsRead(ctx context.Context, callerID, notificationID string) (*dto.NotificationResponse, error)
	DeleteNotification(ctx context.Context, callerID, notificationID string) error
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo NotificationStore
	publisher        realtime.Publisher
	breaker          *gobreaker.CircuitBreaker
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService. Side-effect
// writes go through a circuit breaker so a struggling notifications
// collection cannot slow down every project and message operation.
func NewNotificationService(notificationRepo NotificationStore, publisher realtime.Publisher, logger zerolog.Logger) NotificationService {
	settings := gobreaker.Settings{
		Name:        "notification-store",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Notification circuit breaker state changed")
		},
	}

	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		breaker:          gobreaker.NewCircuitBreaker(settings),
		logger:           logger,
	}
}

// Notify persists a notification and pushes it to the recipient's user room.
// Errors are swallowed: a notification must never fail the operation that
// produced it.
func (s *notificationServiceImpl) Notify(ctx context.Context, notification *models.Notification) {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.notificationRepo.Insert(ctx, notification)
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("recipient", notification.Recipient.Hex()).
			Str("type", string(notification.Type)).
			Msg("Failed to deliver notification")
		return
	}

	s.publisher.Publish(
		realtime.UserRoom(notification.Recipient.Hex()),
		realtime.EventNewNotification,
		dto.ToNotificationResponse(notification),
	)
}

// GetNotifications returns the recipient's most recent notifications,
// newest first
func (s *notificationServiceImpl) GetNotifications(ctx context.Context, recipientID string) (*dto.NotificationListResponse, error) {
	recipient, err := primitive.ObjectIDFromHex(recipientID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid recipient id")
	}

	notifications, err := s.notificationRepo.FindByRecipient(ctx, recipient)
	if err != nil {
		return nil, err
	}

	response := dto.ToNotificationListResponse(notifications)
	return &response, nil
}

// CreateNotification creates an explicit notification and pushes it to its
// recipient. Unlike Notify, persistence errors propagate to the caller.
func (s *notificationServiceImpl) CreateNotification(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	recipient, err := primitive.ObjectIDFromHex(req.Recipient)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid recipient id")
	}

	notification := &models.Notification{
		Recipient: recipient,
		Type:      models.NotificationType(req.Type),
		Title:     req.Title,
		Message:   req.Message,
	}

	if req.RelatedID != "" {
		relatedID, err := primitive.ObjectIDFromHex(req.RelatedID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid related id")
		}
		notification.RelatedID = &relatedID
	}

	if err := s.notificationRepo.Insert(ctx, notification); err != nil {
		return nil, err
	}

	response := dto.ToNotificationResponse(notification)
	s.publisher.Publish(realtime.UserRoom(recipient.Hex()), realtime.EventNewNotification, response)

	return &response, nil
}

// MarkAsRead marks a notification read. Only the recipient may do so.
func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, callerID, notificationID string) (*dto.NotificationResponse, error) {
	notification, err := s.authorizeRecipient(ctx, callerID, notificationID)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkRead(ctx, notification.ID); err != nil {
		return nil, err
	}

	notification.Read = true
	response := dto.ToNotificationResponse(notification)
	return &response, nil
}

// DeleteNotification removes a notification. Only the recipient may do so.
func (s *notificationServiceImpl) DeleteNotification(ctx context.Context, callerID, notificationID string) error {
	notification, err := s.authorizeRecipient(ctx, callerID, notificationID)
	if err != nil {
		return err
	}
	return s.notificationRepo.Delete(ctx, notification.ID)
}

func (s *notificationServiceImpl) authorizeRecipient(ctx context.Context, callerID, notificationID string) (*models.Notification, error) {
	id, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return nil, apperrors.ErrNotificationNotFound
	}

	notification, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if notification.Recipient.Hex() != callerID {
		return nil, apperrors.NewForbiddenError("Not authorized to access this notification")
	}

	return notification, nil
}
