package dto

import (
	"time"

	"github.com/devconnect/backend/internal/app/models"
)

// --- Request DTOs ---

// RequiredRoleRequest declares an open position on a project
type RequiredRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=Frontend Backend Fullstack Designer DevOps Mobile"`
}

// CreateProjectRequest represents data for creating a new project
type CreateProjectRequest struct {
	Title         string                `json:"title" binding:"required,min=3,max=120"`
	Description   string                `json:"description" binding:"required"`
	TechStack     []string              `json:"techStack"`
	RequiredRoles []RequiredRoleRequest `json:"requiredRoles"`
	Status        string                `json:"status" binding:"omitempty,oneof=Idea 'In Progress' Completed"`
}

// UpdateProjectRequest represents a whole-field project update by the owner
type UpdateProjectRequest struct {
	Title         *string               `json:"title" binding:"omitempty,min=3,max=120"`
	Description   *string               `json:"description"`
	TechStack     []string              `json:"techStack"`
	RequiredRoles []RequiredRoleRequest `json:"requiredRoles"`
	IsActive      *bool                 `json:"isActive"`
}

// JoinProjectRequest represents a user's application to join a project
type JoinProjectRequest struct {
	Role    string `json:"role" binding:"required"`
	Message string `json:"message" binding:"max=500"`
}

// RespondJoinRequest represents the owner's decision on a join request
type RespondJoinRequest struct {
	RequestID string `json:"requestId" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=accepted rejected"`
}

// UpdateProjectStatusRequest overwrites the project status
type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Idea 'In Progress' Completed"`
}

// --- Response DTOs ---

// RequiredRoleResponse mirrors a project's declared open position
type RequiredRoleResponse struct {
	Role     string  `json:"role"`
	Filled   bool    `json:"filled"`
	FilledBy *string `json:"filledBy,omitempty"`
}

// CollaboratorResponse is a populated collaborator entry
type CollaboratorResponse struct {
	User     UserSummaryResponse `json:"user"`
	Role     string              `json:"role"`
	JoinedAt time.Time           `json:"joinedAt"`
}

// JoinRequestResponse is a populated join request entry
type JoinRequestResponse struct {
	ID        string              `json:"id"`
	User      UserSummaryResponse `json:"user"`
	Role      string              `json:"role"`
	Message   string              `json:"message"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}

// ProjectResponse represents a project with populated user summaries
type ProjectResponse struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Owner         UserSummaryResponse    `json:"owner"`
	TechStack     []string               `json:"techStack"`
	RequiredRoles []RequiredRoleResponse `json:"requiredRoles"`
	Status        string                 `json:"status"`
	Collaborators []CollaboratorResponse `json:"collaborators"`
	JoinRequests  []JoinRequestResponse  `json:"joinRequests"`
	IsActive      bool                   `json:"isActive"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// ProjectListResponse is a paginated list of projects
type ProjectListResponse struct {
	Projects       []ProjectResponse `json:"projects"`
	PaginationInfo PaginationInfo    `json:"pagination"`
}

// ToProjectResponse converts a populated project model into its response form
func ToProjectResponse(project *models.Project) ProjectResponse {
	response := ProjectResponse{
		ID:          project.ID.Hex(),
		Title:       project.Title,
		Description: project.Description,
		TechStack:   project.TechStack,
		Status:      string(project.Status),
		IsActive:    project.IsActive,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	if project.OwnerSummary != nil {
		response.Owner = ToUserSummaryResponse(project.OwnerSummary)
	} else {
		response.Owner = UserSummaryResponse{ID: project.Owner.Hex()}
	}

	response.RequiredRoles = make([]RequiredRoleResponse, 0, len(project.RequiredRoles))
	for _, rr := range project.RequiredRoles {
		entry := RequiredRoleResponse{
			Role:   string(rr.Role),
			Filled: rr.Filled,
		}
		if rr.FilledBy != nil {
			hex := rr.FilledBy.Hex()
			entry.FilledBy = &hex
		}
		response.RequiredRoles = append(response.RequiredRoles, entry)
	}

	response.Collaborators = make([]CollaboratorResponse, 0, len(project.Collaborators))
	for _, collab := range project.Collaborators {
		entry := CollaboratorResponse{
			Role:     collab.Role,
			JoinedAt: collab.JoinedAt,
		}
		if collab.UserSummary != nil {
			entry.User = ToUserSummaryResponse(collab.UserSummary)
		} else {
			entry.User = UserSummaryResponse{ID: collab.User.Hex()}
		}
		response.Collaborators = append(response.Collaborators, entry)
	}

	response.JoinRequests = make([]JoinRequestResponse, 0, len(project.JoinRequests))
	for _, jr := range project.JoinRequests {
		entry := JoinRequestResponse{
			ID:        jr.ID.Hex(),
			Role:      jr.Role,
			Message:   jr.Message,
			Status:    string(jr.Status),
			CreatedAt: jr.CreatedAt,
		}
		if jr.UserSummary != nil {
			entry.User = ToUserSummaryResponse(jr.UserSummary)
		} else {
			entry.User = UserSummaryResponse{ID: jr.User.Hex()}
		}
		response.JoinRequests = append(response.JoinRequests, entry)
	}

	return response
}
