package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus represents the lifecycle stage of a project
type ProjectStatus string

const (
	ProjectStatusIdea       ProjectStatus = "Idea"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

// ValidProjectStatus reports whether s is one of the known project statuses
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusIdea, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// JoinRequestStatus represents the state of a join request
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestAccepted JoinRequestStatus = "accepted"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// ProjectRole is an open position a project declares
type ProjectRole string

const (
	RoleFrontend  ProjectRole = "Frontend"
	RoleBackend   ProjectRole = "Backend"
	RoleFullstack ProjectRole = "Fullstack"
	RoleDesigner  ProjectRole = "Designer"
	RoleDevOps    ProjectRole = "DevOps"
	RoleMobile    ProjectRole = "Mobile"
)

// RequiredRole is a project-declared open position, marked filled once a
// matching join request is accepted
type RequiredRole struct {
	Role     ProjectRole         `json:"role" bson:"role"`
	Filled   bool                `json:"filled" bson:"filled"`
	FilledBy *primitive.ObjectID `json:"filledBy,omitempty" bson:"filledBy,omitempty"`
}

// Collaborator is a user formally attached to a project after an accepted
// join request
type Collaborator struct {
	User     primitive.ObjectID `json:"user" bson:"user"`
	Role     string             `json:"role" bson:"role"`
	JoinedAt time.Time          `json:"joinedAt" bson:"joinedAt"`

	// Populated user summary, not stored
	UserSummary *UserSummary `json:"userSummary,omitempty" bson:"-"`
}

// JoinRequest tracks a user's application to fill a role on a project
type JoinRequest struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Role      string             `json:"role" bson:"role"`
	Message   string             `json:"message" bson:"message"`
	Status    JoinRequestStatus  `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`

	// Populated user summary, not stored
	UserSummary *UserSummary `json:"userSummary,omitempty" bson:"-"`
}

// Project represents a collaborative software project document.
// Join requests, collaborators and required roles are embedded sub-arrays
// mutated by whole-document read-modify-write.
type Project struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description" bson:"description"`
	Owner         primitive.ObjectID `json:"owner" bson:"owner"`
	TechStack     []string           `json:"techStack" bson:"techStack"`
	RequiredRoles []RequiredRole     `json:"requiredRoles" bson:"requiredRoles"`
	Status        ProjectStatus      `json:"status" bson:"status"`
	Collaborators []Collaborator     `json:"collaborators" bson:"collaborators"`
	JoinRequests  []JoinRequest      `json:"joinRequests" bson:"joinRequests"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`

	// Populated owner summary, not stored
	OwnerSummary *UserSummary `json:"ownerSummary,omitempty" bson:"-"`
}

// UserSummary is the slim user view embedded in populated responses
type UserSummary struct {
	ID      primitive.ObjectID `json:"id" bson:"_id"`
	Name    string             `json:"name" bson:"name"`
	Profile Profile            `json:"profile" bson:"profile"`
}

// FindJoinRequest returns the index of the join request with the given id,
// or -1 if none matches
func (p *Project) FindJoinRequest(requestID primitive.ObjectID) int {
	for i := range p.JoinRequests {
		if p.JoinRequests[i].ID == requestID {
			return i
		}
	}
	return -1
}

// HasJoinRequestFrom reports whether any join request from the user exists,
// regardless of its status. A previously rejected user therefore cannot
// request again.
func (p *Project) HasJoinRequestFrom(userID primitive.ObjectID) bool {
	for i := range p.JoinRequests {
		if p.JoinRequests[i].User == userID {
			return true
		}
	}
	return false
}

// IsOwner reports whether the user owns the project
func (p *Project) IsOwner(userID primitive.ObjectID) bool {
	return p.Owner == userID
}

// IsCollaborator reports whether the user is listed as a collaborator
func (p *Project) IsCollaborator(userID primitive.ObjectID) bool {
	for i := range p.Collaborators {
		if p.Collaborators[i].User == userID {
			return true
		}
	}
	return false
}
