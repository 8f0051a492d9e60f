package dto

import (
	"time"

	"github.com/devconnect/backend/internal/app/models"
)

// --- Request DTOs ---

// CreateNotificationRequest creates an explicit notification
type CreateNotificationRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=project_join_request project_join_approved project_join_rejected project_update message general"`
	Title     string `json:"title" binding:"required"`
	Message   string `json:"message" binding:"required"`
	RelatedID string `json:"relatedId"`
}

// --- Response DTOs ---

// NotificationResponse represents a notification for its recipient
type NotificationResponse struct {
	ID           string    `json:"id"`
	Recipient    string    `json:"recipient"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	RelatedID    *string   `json:"relatedId,omitempty"`
	RelatedModel string    `json:"relatedModel,omitempty"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NotificationListResponse is a list of notifications plus its count
type NotificationListResponse struct {
	Count         int                    `json:"count"`
	Notifications []NotificationResponse `json:"notifications"`
}

// ToNotificationResponse converts a notification model into its response form
func ToNotificationResponse(notification *models.Notification) NotificationResponse {
	response := NotificationResponse{
		ID:           notification.ID.Hex(),
		Recipient:    notification.Recipient.Hex(),
		Type:         string(notification.Type),
		Title:        notification.Title,
		Message:      notification.Message,
		RelatedModel: string(notification.RelatedModel),
		Read:         notification.Read,
		CreatedAt:    notification.CreatedAt,
	}

	if notification.RelatedID != nil {
		hex := notification.RelatedID.Hex()
		response.RelatedID = &hex
	}

	return response
}

// ToNotificationListResponse converts a slice of notifications
func ToNotificationListResponse(notifications []models.Notification) NotificationListResponse {
	response := NotificationListResponse{
		Count:         len(notifications),
		Notifications: make([]NotificationResponse, 0, len(notifications)),
	}
	for i := range notifications {
		response.Notifications = append(response.Notifications, ToNotificationResponse(&notifications[i]))
	}
	return response
}
