package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/backend/internal/app/models/dto"
	"github.com/devconnect/backend/internal/app/services"
	"github.com/devconnect/backend/internal/middleware"
	"github.com/devconnect/backend/internal/pkg/helpers"
)

// ProjectController handles project related operations
type ProjectController struct {
	projectService services.ProjectService
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService services.ProjectService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// GetProjects handles listing active projects
// @Summary List projects
// @Description Retrieves active projects, newest first, with owner, collaborator and join request users populated
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.ProjectListResponse} "Projects retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	response, err := c.projectService.GetProjects(ctx, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetProject handles retrieving a single project
// @Summary Get project by ID
// @Description Retrieves a single project with populated user summaries
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse} "Project retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	response, err := c.projectService.GetProjectByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// CreateProject handles creating a new project
// @Summary Create a project
// @Description Creates a project owned by the caller and notifies every other unblocked user
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Create project request"
// @Success 201 {object} dto.APIResponse{data=dto.ProjectResponse} "Project created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	response, err := c.projectService.CreateProject(ctx, ctx.GetString("userID"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// UpdateProject handles updating a project
// @Summary Update a project
// @Description Updates a project's fields. Only the owner may update.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Update project request"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse} "Project updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Not the project owner"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	var req dto.UpdateProjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	response, err := c.projectService.UpdateProject(ctx, ctx.GetString("userID"), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// DeleteProject handles deleting a project
// @Summary Delete a project
// @Description Deletes a project. The owner or an admin may delete.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse "Project deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Not authorized to delete this project"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	err := c.projectService.DeleteProject(ctx, ctx.GetString("userID"), ctx.GetString("role"), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Project deleted successfully"))
}

// RequestToJoin handles a join request for a project
// @Summary Request to join a project
// @Description Appends a pending join request to the project and notifies the owner. A user may only ever send one request per project.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body dto.JoinProjectRequest true "Join project request"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse} "Join request sent successfully"
// @Failure 400 {object} dto.ErrorResponse "Duplicate join request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id}/join [post]
func (c *ProjectController) RequestToJoin(ctx *gin.Context) {
	var req dto.JoinProjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	response, err := c.projectService.RequestToJoin(ctx, ctx.GetString("userID"), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	envelope := dto.NewSuccessResponse(response)
	envelope.Message = "Join request sent successfully"
	ctx.JSON(http.StatusOK, envelope)
}

// RespondToJoinRequest handles the owner's decision on a join request
// @Summary Respond to a join request
// @Description Accepts or rejects a pending join request. Accepting adds the requester as a collaborator and fills the first open matching required role.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body dto.RespondJoinRequest true "Respond to join request"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse} "Join request resolved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Not the project owner"
// @Failure 404 {object} dto.ErrorResponse "Project or join request not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id}/respond [put]
func (c *ProjectController) RespondToJoinRequest(ctx *gin.Context) {
	var req dto.RespondJoinRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	response, err := c.projectService.RespondToJoinRequest(ctx, ctx.GetString("userID"), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UpdateProjectStatus handles overwriting a project's status
// @Summary Update project status
// @Description Overwrites the project status. The owner and collaborators may update it.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body dto.UpdateProjectStatusRequest true "New project status"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse} "Project status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status value"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Not an owner or collaborator"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id}/status [put]
func (c *ProjectController) UpdateProjectStatus(ctx *gin.Context) {
	var req dto.UpdateProjectStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	response, err := c.projectService.UpdateProjectStatus(ctx, ctx.GetString("userID"), ctx.Param("id"), req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
