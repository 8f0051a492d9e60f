package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/devconnect/backend/internal/app/controllers"
	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/middleware"
	"github.com/devconnect/backend/internal/pkg/realtime"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	projectController *controllers.ProjectController,
	messageController *controllers.MessageController,
	notificationController *controllers.NotificationController,
	userController *controllers.UserController,
	adminController *controllers.AdminController,
	realtimeHandler *realtime.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		projects := authenticated.Group("/projects")
		{
			projects.GET("", projectController.GetProjects)
			projects.GET("/:id", projectController.GetProject)
			projects.POST("", projectController.CreateProject)
			projects.PUT("/:id", projectController.UpdateProject)
			projects.DELETE("/:id", projectController.DeleteProject)
			projects.POST("/:id/join", projectController.RequestToJoin)
			projects.PUT("/:id/respond", projectController.RespondToJoinRequest)
			projects.PUT("/:id/status", projectController.UpdateProjectStatus)
		}

		messages := authenticated.Group("/messages")
		{
			// the fixed segment must come before the :roomId wildcard
			messages.GET("/rooms/my", messageController.GetUserRooms)
			messages.GET("/:roomId", messageController.GetRoomMessages)
			messages.POST("", messageController.SendMessage)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.POST("", notificationController.CreateNotification)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
			notifications.DELETE("/:id", notificationController.DeleteNotification)
		}

		users := authenticated.Group("/users")
		{
			users.GET("", userController.GetUsers)
			users.GET("/search", userController.SearchUsers)
			users.PUT("/profile", userController.UpdateProfile)
			users.GET("/:id", userController.GetUser)
		}

		// websocket upgrade shares the JWT middleware; browsers pass the
		// token as a query parameter
		authenticated.GET("/ws", realtimeHandler.HandleConnection)

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/users", adminController.GetAllUsers)
			admin.PUT("/users/:id/block", adminController.ToggleUserBlock)
			admin.DELETE("/users/:id", adminController.DeleteUser)
			admin.GET("/projects", adminController.GetAllProjects)
			admin.DELETE("/projects/:id", adminController.DeleteProject)
		}
	}
}
