package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType covers the join-request lifecycle plus message and
// project events
type NotificationType string

const (
	NotificationJoinRequest  NotificationType = "project_join_request"
	NotificationJoinApproved NotificationType = "project_join_approved"
	NotificationJoinRejected NotificationType = "project_join_rejected"
	NotificationProjectPost  NotificationType = "project_update"
	NotificationMessage      NotificationType = "message"
	NotificationGeneral      NotificationType = "general"
)

// RelatedModel names the collection a notification's relatedId points into
type RelatedModel string

const (
	RelatedProject RelatedModel = "Project"
	RelatedUser    RelatedModel = "User"
	RelatedMessage RelatedModel = "Message"
)

// Notification is owned by its recipient: only the read flag is ever
// mutated, and only the recipient may delete it.
type Notification struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Recipient    primitive.ObjectID  `json:"recipient" bson:"recipient"`
	Type         NotificationType    `json:"type" bson:"type"`
	Title        string              `json:"title" bson:"title"`
	Message      string              `json:"message" bson:"message"`
	RelatedID    *primitive.ObjectID `json:"relatedId,omitempty" bson:"relatedId,omitempty"`
	RelatedModel RelatedModel        `json:"relatedModel,omitempty" bson:"relatedModel,omitempty"`
	Read         bool                `json:"read" bson:"read"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
}
