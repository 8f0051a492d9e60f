package dto

import (
	"time"

	"github.com/devconnect/backend/internal/app/models"
)

// --- Request DTOs ---

// UpdateProfileRequest updates the caller's own profile sub-document
type UpdateProfileRequest struct {
	Bio        string   `json:"bio" binding:"max=1000"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Github     string   `json:"github" binding:"omitempty,url"`
	Portfolio  string   `json:"portfolio" binding:"omitempty,url"`
	Avatar     string   `json:"avatar"`
	Location   string   `json:"location"`
	Website    string   `json:"website" binding:"omitempty,url"`
	Linkedin   string   `json:"linkedin" binding:"omitempty,url"`
	Twitter    string   `json:"twitter"`
}

// SearchUsersRequest holds the user search filters
type SearchUsersRequest struct {
	Skills     string `form:"skills"`
	Experience string `form:"experience"`
}

// --- Response DTOs ---

// UserSummaryResponse is the slim user view embedded in other resources
type UserSummaryResponse struct {
	ID      string         `json:"id"`
	Name    string         `json:"name,omitempty"`
	Profile models.Profile `json:"profile,omitempty"`
}

// UserResponse is the full public view of a user
type UserResponse struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	IsBlocked bool           `json:"isBlocked"`
	Profile   models.Profile `json:"profile"`
	CreatedAt time.Time      `json:"createdAt"`
}

// UserListResponse is a list of users plus its count
type UserListResponse struct {
	Count int            `json:"count"`
	Users []UserResponse `json:"users"`
}

// ToUserSummaryResponse converts a user summary model
func ToUserSummaryResponse(summary *models.UserSummary) UserSummaryResponse {
	return UserSummaryResponse{
		ID:      summary.ID.Hex(),
		Name:    summary.Name,
		Profile: summary.Profile,
	}
}

// ToUserResponse converts a user model into its public response form
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		IsBlocked: user.IsBlocked,
		Profile:   user.Profile,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserListResponse converts a slice of users
func ToUserListResponse(users []models.User) UserListResponse {
	response := UserListResponse{
		Count: len(users),
		Users: make([]UserResponse, 0, len(users)),
	}
	for i := range users {
		response.Users = append(response.Users, ToUserResponse(&users[i]))
	}
	return response
}
