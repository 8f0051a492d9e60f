package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/app/models/dto"
	"github.com/devconnect/backend/internal/pkg/apperrors"
)

// MessageService defines the interface for chat message operations
type MessageService interface {
	GetRoomMessages(ctx context.Context, roomID string) (*dto.MessageListResponse, error)
	SendMessage(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetUserRooms(ctx context.Context, userID string) (*dto.RoomListResponse, error)
}

// messageServiceImpl implements MessageService
type messageServiceImpl struct {
	messageRepo MessageStore
	userRepo    UserStore
	notifier    Notifier
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo MessageStore, userRepo UserStore, notifier Notifier, logger zerolog.Logger) MessageService {
	return &messageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetRoomMessages returns a room's messages oldest first with sender
// summaries populated
func (s *messageServiceImpl) GetRoomMessages(ctx context.Context, roomID string) (*dto.MessageListResponse, error) {
	if roomID == "" {
		return nil, apperrors.NewBadRequestError("Room id is required")
	}

	messages, err := s.messageRepo.FindByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if err := s.populateSenders(ctx, messages); err != nil {
		return nil, err
	}

	response := dto.ToMessageListResponse(messages)
	return &response, nil
}

// SendMessage persists a chat message and notifies the other room
// participants. The notification side is best effort.
func (s *messageServiceImpl) SendMessage(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	sender, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid user id")
	}

	messageType := models.MessageTypeText
	if req.MessageType != "" {
		messageType = models.MessageType(req.MessageType)
	}

	message := &models.Message{
		RoomID:      req.RoomID,
		Sender:      sender,
		Message:     req.Message,
		MessageType: messageType,
		FileURL:     req.FileURL,
	}

	if err := s.messageRepo.Insert(ctx, message); err != nil {
		return nil, err
	}

	if summaries, err := s.userRepo.FindSummaries(ctx, []primitive.ObjectID{sender}); err == nil {
		message.SenderSummary = summaries[sender]
	} else {
		s.logger.Warn().Err(err).Str("userId", senderID).Msg("Failed to load sender summary")
	}

	s.notifyRecipients(ctx, message)

	response := dto.ToMessageResponse(message)
	return &response, nil
}

// notifyRecipients delivers a "new message" notification to everyone in the
// room except the sender. Direct rooms encode their two participants in the
// room id; for any other room the recipients are the distinct users who
// have previously sent into it.
func (s *messageServiceImpl) notifyRecipients(ctx context.Context, message *models.Message) {
	senderName := message.Sender.Hex()
	if message.SenderSummary != nil {
		senderName = message.SenderSummary.Name
	}

	recipients := s.deriveRecipients(ctx, message)

	relatedID := message.ID
	for _, recipient := range recipients {
		s.notifier.Notify(ctx, &models.Notification{
			Recipient:    recipient,
			Type:         models.NotificationMessage,
			Title:        "New Message",
			Message:      fmt.Sprintf("%s sent you a message", senderName),
			RelatedID:    &relatedID,
			RelatedModel: models.RelatedMessage,
		})
	}
}

func (s *messageServiceImpl) deriveRecipients(ctx context.Context, message *models.Message) []primitive.ObjectID {
	if participants := models.RoomParticipants(message.RoomID); participants != nil {
		recipients := make([]primitive.ObjectID, 0, len(participants))
		for _, hex := range participants {
			id, err := primitive.ObjectIDFromHex(hex)
			if err != nil || id == message.Sender {
				continue
			}
			recipients = append(recipients, id)
		}
		return recipients
	}

	senders, err := s.messageRepo.DistinctSenders(ctx, message.RoomID)
	if err != nil {
		s.logger.Error().Err(err).Str("roomId", message.RoomID).Msg("Failed to derive message recipients")
		return nil
	}

	recipients := senders[:0]
	for _, id := range senders {
		if id != message.Sender {
			recipients = append(recipients, id)
		}
	}
	return recipients
}

// GetUserRooms lists the room ids the user has sent messages into
func (s *messageServiceImpl) GetUserRooms(ctx context.Context, userID string) (*dto.RoomListResponse, error) {
	user, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid user id")
	}

	rooms, err := s.messageRepo.DistinctRooms(ctx, user)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []string{}
	}

	return &dto.RoomListResponse{Rooms: rooms}, nil
}

// populateSenders attaches sender summaries across the given messages with
// a single lookup
func (s *messageServiceImpl) populateSenders(ctx context.Context, messages []models.Message) error {
	idSet := make(map[primitive.ObjectID]struct{})
	for i := range messages {
		idSet[messages[i].Sender] = struct{}{}
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

	for i := range messages {
		messages[i].SenderSummary = summaries[messages[i].Sender]
	}

	return nil
}
