package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/backend/internal/app/models/dto"
	"github.com/devconnect/backend/internal/app/services"
	"github.com/devconnect/backend/internal/middleware"
)

// AdminController handles administrative operations
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// GetAllUsers handles listing every user
// @Summary List all users (admin)
// @Description Retrieves every user including blocked ones
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (c *AdminController) GetAllUsers(ctx *gin.Context) {
	response, err := c.adminService.GetAllUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ToggleUserBlock handles blocking or unblocking a user
// @Summary Block or unblock a user (admin)
// @Description Flips a user's blocked flag. Admins cannot block their own account.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User block flag toggled"
// @Failure 400 {object} dto.ErrorResponse "Cannot block own account"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/block [put]
func (c *AdminController) ToggleUserBlock(ctx *gin.Context) {
	response, err := c.adminService.ToggleUserBlock(ctx, ctx.GetString("userID"), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "User unblocked successfully"
	if response.IsBlocked {
		message = "User blocked successfully"
	}

	envelope := dto.NewSuccessResponse(response)
	envelope.Message = message
	ctx.JSON(http.StatusOK, envelope)
}

// DeleteUser handles deleting a user account
// @Summary Delete a user (admin)
// @Description Removes a user account. Admins cannot delete their own.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Cannot delete own account"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.adminService.DeleteUser(ctx, ctx.GetString("userID"), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User deleted successfully"))
}

// GetAllProjects handles listing every project
// @Summary List all projects (admin)
// @Description Retrieves every project including inactive ones
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProjectListResponse} "Projects retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/projects [get]
func (c *AdminController) GetAllProjects(ctx *gin.Context) {
	response, err := c.adminService.GetAllProjects(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// DeleteProject handles deleting any project
// @Summary Delete a project (admin)
// @Description Removes any project regardless of ownership
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse "Project deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/projects/{id} [delete]
func (c *AdminController) DeleteProject(ctx *gin.Context) {
	if err := c.adminService.DeleteProject(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Project deleted successfully"))
}
