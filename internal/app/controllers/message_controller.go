package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/backend/internal/app/models/dto"
	"github.com/devconnect/backend/internal/app/services"
	"github.com/devconnect/backend/internal/middleware"
)

// MessageController handles chat message operations
type MessageController struct {
	messageService services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService) *MessageController {
	return &MessageController{
		messageService: messageService,
	}
}

// GetRoomMessages handles retrieving a room's message history
// @Summary Get room messages
// @Description Retrieves a room's messages, oldest first, with sender summaries populated
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param roomId path string true "Room ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageListResponse} "Messages retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages/{roomId} [get]
func (c *MessageController) GetRoomMessages(ctx *gin.Context) {
	response, err := c.messageService.GetRoomMessages(ctx, ctx.Param("roomId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// SendMessage handles persisting a chat message
// @Summary Send a message
// @Description Persists a chat message in a room and notifies the other participants
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Send message request"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Message sent successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	response, err := c.messageService.SendMessage(ctx, ctx.GetString("userID"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// GetUserRooms handles listing the caller's chat rooms
// @Summary List my chat rooms
// @Description Lists the room ids the caller has sent messages into
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.RoomListResponse} "Rooms retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages/rooms/my [get]
func (c *MessageController) GetUserRooms(ctx *gin.Context) {
	response, err := c.messageService.GetUserRooms(ctx, ctx.GetString("userID"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
