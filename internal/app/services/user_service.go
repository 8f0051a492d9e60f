package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/app/models/dto"
	"github.com/devconnect/backend/internal/pkg/apperrors"
)

// UserService defines the interface for user and profile operations
type UserService interface {
	GetUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error)
	SearchUsers(ctx context.Context, req *dto.SearchUsersRequest) (*dto.UserListResponse, error)
	UpdateProfile(ctx context.Context, callerID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo UserStore
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUsers returns all unblocked users, newest first
func (s *userServiceImpl) GetUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := s.userRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserListResponse(users)
	return &response, nil
}

// GetUserByID returns a single user's public view
func (s *userServiceImpl) GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserResponse(user)
	return &response, nil
}

// SearchUsers filters unblocked users by skills and experience. Skills is
// a comma separated list matched case-insensitively; experience must match
// exactly.
func (s *userServiceImpl) SearchUsers(ctx context.Context, req *dto.SearchUsersRequest) (*dto.UserListResponse, error) {
	var skills []string
	if req.Skills != "" {
		for _, skill := range strings.Split(req.Skills, ",") {
			if trimmed := strings.TrimSpace(skill); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
	}

	users, err := s.userRepo.Search(ctx, skills, req.Experience)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserListResponse(users)
	return &response, nil
}

// UpdateProfile overwrites the caller's profile sub-document and returns
// the updated user
func (s *userServiceImpl) UpdateProfile(ctx context.Context, callerID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	id, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	profile := models.Profile{
		Bio:        req.Bio,
		Skills:     req.Skills,
		Experience: req.Experience,
		Github:     req.Github,
		Portfolio:  req.Portfolio,
		Avatar:     req.Avatar,
		Location:   req.Location,
		Website:    req.Website,
		Linkedin:   req.Linkedin,
		Twitter:    req.Twitter,
	}

	user, err := s.userRepo.UpdateProfile(ctx, id, profile)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserResponse(user)
	return &response, nil
}
