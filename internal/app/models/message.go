package models

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageType represents the kind of chat message
type MessageType string

const (
	MessageTypeText MessageType = "text"
	MessageTypeFile MessageType = "file"
)

// Message represents a chat message in a room. Messages are created on send
// and never mutated or deleted.
type Message struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RoomID      string             `json:"roomId" bson:"roomId"`
	Sender      primitive.ObjectID `json:"sender" bson:"sender"`
	Message     string             `json:"message" bson:"message"`
	MessageType MessageType        `json:"messageType" bson:"messageType"`
	FileURL     string             `json:"fileUrl,omitempty" bson:"fileUrl,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`

	// Populated sender summary, not stored
	SenderSummary *UserSummary `json:"senderSummary,omitempty" bson:"-"`
}

// DirectRoomID derives the room id for a direct chat between two users:
// the two hex ids sorted and joined with a hyphen, so both sides compute
// the same room.
func DirectRoomID(a, b primitive.ObjectID) string {
	ids := []string{a.Hex(), b.Hex()}
	sort.Strings(ids)
	return strings.Join(ids, "-")
}

// RoomParticipants splits a hyphenated direct-chat room id into its
// participant hex ids. Returns nil for room ids that are not hyphenated.
func RoomParticipants(roomID string) []string {
	if !strings.Contains(roomID, "-") {
		return nil
	}
	return strings.Split(roomID, "-")
}
