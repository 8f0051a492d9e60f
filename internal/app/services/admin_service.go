package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/backend/internal/app/models/dto"
	"github.com/devconnect/backend/internal/pkg/apperrors"
)

// AdminService defines the interface for administrative operations
type AdminService interface {
	GetAllUsers(ctx context.Context) (*dto.UserListResponse, error)
	ToggleUserBlock(ctx context.Context, callerID, userID string) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, callerID, userID string) error
	GetAllProjects(ctx context.Context) (*dto.ProjectListResponse, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	userRepo    UserStore
	projectRepo ProjectStore
	logger      zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo UserStore, projectRepo ProjectStore, logger zerolog.Logger) AdminService {
	return &adminServiceImpl{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// GetAllUsers returns every user, blocked ones included
func (s *adminServiceImpl) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserListResponse(users)
	return &response, nil
}

// ToggleUserBlock flips a user's blocked flag. Admins cannot block their
// own account.
func (s *adminServiceImpl) ToggleUserBlock(ctx context.Context, callerID, userID string) (*dto.UserResponse, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.ID.Hex() == callerID {
		return nil, apperrors.NewBadRequestError("You cannot block your own account")
	}

	user.IsBlocked = !user.IsBlocked
	if err := s.userRepo.SetBlocked(ctx, user.ID, user.IsBlocked); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("userId", userID).
		Bool("blocked", user.IsBlocked).
		Msg("User block flag toggled")

	response := dto.ToUserResponse(user)
	return &response, nil
}

// DeleteUser removes a user account. Admins cannot delete their own.
func (s *adminServiceImpl) DeleteUser(ctx context.Context, callerID, userID string) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if user.ID.Hex() == callerID {
		return apperrors.NewBadRequestError("You cannot delete your own account")
	}

	return s.userRepo.Delete(ctx, user.ID)
}

// GetAllProjects returns every project, inactive ones included, with owner
// summaries populated
func (s *adminServiceImpl) GetAllProjects(ctx context.Context) (*dto.ProjectListResponse, error) {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	idSet := make(map[primitive.ObjectID]struct{})
	for i := range projects {
		idSet[projects[i].Owner] = struct{}{}
	}
	if len(idSet) > 0 {
		ids := make([]primitive.ObjectID, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		summaries, err := s.userRepo.FindSummaries(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range projects {
			projects[i].OwnerSummary = summaries[projects[i].Owner]
		}
	}

	response := &dto.ProjectListResponse{
		Projects: make([]dto.ProjectResponse, 0, len(projects)),
	}
	for i := range projects {
		response.Projects = append(response.Projects, dto.ToProjectResponse(&projects[i]))
	}
	response.PaginationInfo = dto.PaginationInfo{
		CurrentPage: 1,
		PageSize:    len(projects),
		TotalItems:  int64(len(projects)),
		TotalPages:  1,
	}

	return response, nil
}

// DeleteProject removes any project regardless of ownership
func (s *adminServiceImpl) DeleteProject(ctx context.Context, projectID string) error {
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return apperrors.ErrProjectNotFound
	}

	if _, err := s.projectRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.projectRepo.Delete(ctx, id)
}
