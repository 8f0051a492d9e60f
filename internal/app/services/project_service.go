package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/app/models/dto"
	"github.com/devconnect/backend/internal/pkg/apperrors"
	"github.com/devconnect/backend/internal/pkg/helpers"
)

// ProjectService defines the interface for project operations
type ProjectService interface {
	GetProjects(ctx context.Context, page, size int) (*dto.ProjectListResponse, error)
	GetProjectByID(ctx context.Context, projectID string) (*dto.ProjectResponse, error)
	CreateProject(ctx context.Context, ownerID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, callerID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, callerID, callerRole, projectID string) error
	RequestToJoin(ctx context.Context, callerID, projectID string, req *dto.JoinProjectRequest) (*dto.ProjectResponse, error)
	RespondToJoinRequest(ctx context.Context, callerID, projectID string, req *dto.RespondJoinRequest) (*dto.ProjectResponse, error)
	UpdateProjectStatus(ctx context.Context, callerID, projectID string, status string) (*dto.ProjectResponse, error)
}

// projectServiceImpl implements ProjectService
type projectServiceImpl struct {
	projectRepo ProjectStore
	userRepo    UserStore
	notifier    Notifier
	logger      zerolog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo ProjectStore, userRepo UserStore, notifier Notifier, logger zerolog.Logger) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetProjects returns active projects, newest first, with user summaries
// populated
func (s *projectServiceImpl) GetProjects(ctx context.Context, page, size int) (*dto.ProjectListResponse, error) {
	skip, limit := helpers.CalculateSkipLimit(page, size)

	projects, err := s.projectRepo.FindActive(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.projectRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.populateProjects(ctx, projects); err != nil {
		return nil, err
	}

	response := &dto.ProjectListResponse{
		Projects:       make([]dto.ProjectResponse, 0, len(projects)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}
	for i := range projects {
		response.Projects = append(response.Projects, dto.ToProjectResponse(&projects[i]))
	}

	return response, nil
}

// GetProjectByID returns a single project with user summaries populated
func (s *projectServiceImpl) GetProjectByID(ctx context.Context, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, project)
}

// CreateProject creates a project owned by the caller and notifies every
// other unblocked user about it
func (s *projectServiceImpl) CreateProject(ctx context.Context, ownerID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid user id")
	}

	status := models.ProjectStatusIdea
	if req.Status != "" {
		status = models.ProjectStatus(req.Status)
	}

	project := &models.Project{
		Title:         req.Title,
		Description:   req.Description,
		Owner:         owner,
		TechStack:     req.TechStack,
		RequiredRoles: make([]models.RequiredRole, 0, len(req.RequiredRoles)),
		Status:        status,
		Collaborators: []models.Collaborator{},
		JoinRequests:  []models.JoinRequest{},
		IsActive:      true,
	}
	if project.TechStack == nil {
		project.TechStack = []string{}
	}
	for _, rr := range req.RequiredRoles {
		project.RequiredRoles = append(project.RequiredRoles, models.RequiredRole{
			Role: models.ProjectRole(rr.Role),
		})
	}

	if err := s.projectRepo.Insert(ctx, project); err != nil {
		return nil, err
	}

	s.broadcastNewProject(ctx, project)

	return s.toResponse(ctx, project)
}

// broadcastNewProject fans a project_update notification out to every
// unblocked user except the owner. The fan-out is best effort and never
// fails project creation.
func (s *projectServiceImpl) broadcastNewProject(ctx context.Context, project *models.Project) {
	ownerUser, err := s.userRepo.FindByID(ctx, project.Owner)
	if err != nil {
		s.logger.Error().Err(err).Str("projectId", project.ID.Hex()).Msg("Failed to load owner for project broadcast")
		return
	}

	recipients, err := s.userRepo.FindIDsExcept(ctx, project.Owner)
	if err != nil {
		s.logger.Error().Err(err).Str("projectId", project.ID.Hex()).Msg("Failed to load recipients for project broadcast")
		return
	}

	relatedID := project.ID
	for _, recipient := range recipients {
		s.notifier.Notify(ctx, &models.Notification{
			Recipient:    recipient,
			Type:         models.NotificationProjectPost,
			Title:        "New Project Posted",
			Message:      fmt.Sprintf("%s posted a new project: %s", ownerUser.Name, project.Title),
			RelatedID:    &relatedID,
			RelatedModel: models.RelatedProject,
		})
	}
}

// UpdateProject applies the owner's edits and returns the updated project
func (s *projectServiceImpl) UpdateProject(ctx context.Context, callerID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	caller, err := primitive.ObjectIDFromHex(callerID)
	if err != nil || !project.IsOwner(caller) {
		return nil, apperrors.NewForbiddenError("Not authorized to update this project")
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.TechStack != nil {
		project.TechStack = req.TechStack
	}
	if req.RequiredRoles != nil {
		roles := make([]models.RequiredRole, 0, len(req.RequiredRoles))
		for _, rr := range req.RequiredRoles {
			roles = append(roles, models.RequiredRole{Role: models.ProjectRole(rr.Role)})
		}
		project.RequiredRoles = roles
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	if err := s.projectRepo.Replace(ctx, project); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, project)
}

// DeleteProject removes a project. The owner or an admin may delete.
func (s *projectServiceImpl) DeleteProject(ctx context.Context, callerID, callerRole, projectID string) error {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return err
	}

	caller, err := primitive.ObjectIDFromHex(callerID)
	if err != nil || (!project.IsOwner(caller) && callerRole != string(models.RoleAdmin)) {
		return apperrors.NewForbiddenError("Not authorized to delete this project")
	}

	return s.projectRepo.Delete(ctx, project.ID)
}

// RequestToJoin appends a pending join request and notifies the owner.
// A user gets exactly one request per project, whatever its outcome.
func (s *projectServiceImpl) RequestToJoin(ctx context.Context, callerID, projectID string, req *dto.JoinProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	caller, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid user id")
	}

	if project.HasJoinRequestFrom(caller) {
		return nil, apperrors.NewDuplicateRequestError("You have already sent a join request for this project")
	}

	project.JoinRequests = append(project.JoinRequests, models.JoinRequest{
		ID:        primitive.NewObjectID(),
		User:      caller,
		Role:      req.Role,
		Message:   req.Message,
		Status:    models.JoinRequestPending,
		CreatedAt: time.Now().UTC(),
	})

	if err := s.projectRepo.Replace(ctx, project); err != nil {
		return nil, err
	}

	if requester, err := s.userRepo.FindByID(ctx, caller); err != nil {
		s.logger.Error().Err(err).Str("userId", callerID).Msg("Failed to load requester for join notification")
	} else {
		relatedID := project.ID
		s.notifier.Notify(ctx, &models.Notification{
			Recipient:    project.Owner,
			Type:         models.NotificationJoinRequest,
			Title:        "New Join Request",
			Message:      fmt.Sprintf("%s wants to join your project %q", requester.Name, project.Title),
			RelatedID:    &relatedID,
			RelatedModel: models.RelatedProject,
		})
	}

	return s.toResponse(ctx, project)
}

// RespondToJoinRequest resolves a pending join request. Accepting appends
// the requester to collaborators and fills the first open required role
// matching the requested one; rejecting only flips the status. Either way
// the requester is notified of the outcome.
func (s *projectServiceImpl) RespondToJoinRequest(ctx context.Context, callerID, projectID string, req *dto.RespondJoinRequest) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	caller, err := primitive.ObjectIDFromHex(callerID)
	if err != nil || !project.IsOwner(caller) {
		return nil, apperrors.NewForbiddenError("Not authorized to respond to join requests")
	}

	requestID, err := primitive.ObjectIDFromHex(req.RequestID)
	if err != nil {
		return nil, apperrors.ErrJoinRequestNotFound
	}

	index := project.FindJoinRequest(requestID)
	if index == -1 {
		return nil, apperrors.ErrJoinRequestNotFound
	}

	joinRequest := &project.JoinRequests[index]
	if joinRequest.Status != models.JoinRequestPending {
		return nil, apperrors.NewBadRequestError("Join request has already been resolved")
	}

	if req.Status == string(models.JoinRequestAccepted) {
		project.Collaborators = append(project.Collaborators, models.Collaborator{
			User:     joinRequest.User,
			Role:     joinRequest.Role,
			JoinedAt: time.Now().UTC(),
		})

		for i := range project.RequiredRoles {
			role := &project.RequiredRoles[i]
			if string(role.Role) == joinRequest.Role && !role.Filled {
				role.Filled = true
				filledBy := joinRequest.User
				role.FilledBy = &filledBy
				break
			}
		}
	}

	joinRequest.Status = models.JoinRequestStatus(req.Status)

	if err := s.projectRepo.Replace(ctx, project); err != nil {
		return nil, err
	}

	s.notifyJoinOutcome(ctx, project, joinRequest)

	return s.toResponse(ctx, project)
}

func (s *projectServiceImpl) notifyJoinOutcome(ctx context.Context, project *models.Project, joinRequest *models.JoinRequest) {
	notification := &models.Notification{
		Recipient:    joinRequest.User,
		RelatedModel: models.RelatedProject,
	}
	relatedID := project.ID
	notification.RelatedID = &relatedID

	if joinRequest.Status == models.JoinRequestAccepted {
		notification.Type = models.NotificationJoinApproved
		notification.Title = "Join Request Approved"
		notification.Message = fmt.Sprintf("Your join request for %q has been approved!", project.Title)
	} else {
		notification.Type = models.NotificationJoinRejected
		notification.Title = "Join Request Rejected"
		notification.Message = fmt.Sprintf("Your join request for %q has been rejected.", project.Title)
	}

	s.notifier.Notify(ctx, notification)
}

// UpdateProjectStatus overwrites the project status. The owner and
// collaborators may update it.
func (s *projectServiceImpl) UpdateProjectStatus(ctx context.Context, callerID, projectID string, status string) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	caller, err := primitive.ObjectIDFromHex(callerID)
	if err != nil || (!project.IsOwner(caller) && !project.IsCollaborator(caller)) {
		return nil, apperrors.NewForbiddenError("Not authorized to update project status")
	}

	if !models.ValidProjectStatus(models.ProjectStatus(status)) {
		return nil, apperrors.NewValidationError("Invalid project status")
	}

	project.Status = models.ProjectStatus(status)

	if err := s.projectRepo.Replace(ctx, project); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, project)
}

func (s *projectServiceImpl) findProject(ctx context.Context, projectID string) (*models.Project, error) {
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return s.projectRepo.FindByID(ctx, id)
}

// populateProjects attaches user summaries for owners, collaborators and
// join requesters across the given projects with a single lookup
func (s *projectServiceImpl) populateProjects(ctx context.Context, projects []models.Project) error {
	idSet := make(map[primitive.ObjectID]struct{})
	for i := range projects {
		idSet[projects[i].Owner] = struct{}{}
		for _, collab := range projects[i].Collaborators {
			idSet[collab.User] = struct{}{}
		}
		for _, jr := range projects[i].JoinRequests {
			idSet[jr.User] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	summaries, err := s.userRepo.FindSummaries(ctx, ids)
	if err != nil {
		return err
	}

	for i := range projects {
		project := &projects[i]
		project.OwnerSummary = summaries[project.Owner]
		for j := range project.Collaborators {
			project.Collaborators[j].UserSummary = summaries[project.Collaborators[j].User]
		}
		for j := range project.JoinRequests {
			project.JoinRequests[j].UserSummary = summaries[project.JoinRequests[j].User]
		}
	}

	return nil
}

func (s *projectServiceImpl) toResponse(ctx context.Context, project *models.Project) (*dto.ProjectResponse, error) {
	if project.OwnerSummary == nil {
		single := []models.Project{*project}
		if err := s.populateProjects(ctx, single); err != nil {
			return nil, err
		}
		project = &single[0]
	}

	response := dto.ToProjectResponse(project)
	return &response, nil
}
