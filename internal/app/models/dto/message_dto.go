package dto

import (
	"time"

	"github.com/devconnect/backend/internal/app/models"
)

// --- Request DTOs ---

// SendMessageRequest represents data for sending a chat message
type SendMessageRequest struct {
	RoomID      string `json:"roomId" binding:"required"`
	Message     string `json:"message" binding:"required"`
	MessageType string `json:"messageType" binding:"omitempty,oneof=text file"`
	FileURL     string `json:"fileUrl" binding:"omitempty,url"`
}

// --- Response DTOs ---

// MessageResponse represents a chat message with its sender summary
type MessageResponse struct {
	ID          string               `json:"id"`
	RoomID      string               `json:"roomId"`
	Sender      UserSummaryResponse  `json:"sender"`
	Message     string               `json:"message"`
	MessageType string               `json:"messageType"`
	FileURL     string               `json:"fileUrl,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// MessageListResponse is a chronological list of messages in a room
type MessageListResponse struct {
	Count    int               `json:"count"`
	Messages []MessageResponse `json:"messages"`
}

// RoomListResponse lists the rooms a user has participated in
type RoomListResponse struct {
	Rooms []string `json:"rooms"`
}

// ToMessageResponse converts a message model into its response form
func ToMessageResponse(message *models.Message) MessageResponse {
	response := MessageResponse{
		ID:          message.ID.Hex(),
		RoomID:      message.RoomID,
		Message:     message.Message,
		MessageType: string(message.MessageType),
		FileURL:     message.FileURL,
		CreatedAt:   message.CreatedAt,
	}

	if message.SenderSummary != nil {
		response.Sender = ToUserSummaryResponse(message.SenderSummary)
	} else {
		response.Sender = UserSummaryResponse{ID: message.Sender.Hex()}
	}

	return response
}

// ToMessageListResponse converts a slice of messages
func ToMessageListResponse(messages []models.Message) MessageListResponse {
	response := MessageListResponse{
		Count:    len(messages),
		Messages: make([]MessageResponse, 0, len(messages)),
	}
	for i := range messages {
		response.Messages = append(response.Messages, ToMessageResponse(&messages[i]))
	}
	return response
}
