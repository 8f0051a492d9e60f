package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/app/repositories"
	"github.com/devconnect/backend/internal/pkg/realtime"
)

// The store interfaces declare the persistence surface each service needs.
// The repositories package satisfies them against MongoDB; tests satisfy
// them with in-memory fakes.

// ProjectStore is the persistence surface for project documents
type ProjectStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindActive(ctx context.Context, skip, limit int64) ([]models.Project, error)
	CountActive(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) ([]models.Project, error)
	Insert(ctx context.Context, project *models.Project) error
	Replace(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserStore is the persistence surface for user documents
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindActive(ctx context.Context) ([]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindIDsExcept(ctx context.Context, exclude primitive.ObjectID) ([]primitive.ObjectID, error)
	Search(ctx context.Context, skills []string, experience string) ([]models.User, error)
	FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserSummary, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile models.Profile) (*models.User, error)
	SetBlocked(ctx context.Context, id primitive.ObjectID, blocked bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MessageStore is the persistence surface for chat messages
type MessageStore interface {
	Insert(ctx context.Context, message *models.Message) error
	FindByRoom(ctx context.Context, roomID string) ([]models.Message, error)
	DistinctSenders(ctx context.Context, roomID string) ([]primitive.ObjectID, error)
	DistinctRooms(ctx context.Context, sender primitive.ObjectID) ([]string, error)
}

// NotificationStore is the persistence surface for notifications
type NotificationStore interface {
	Insert(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	FindByRecipient(ctx context.Context, recipient primitive.ObjectID) ([]models.Notification, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Services bundles the service layer for dependency wiring
type Services struct {
	Project      ProjectService
	Message      MessageService
	Notification NotificationService
	User         UserService
	Admin        AdminService
}

// NewServices constructs the service layer on top of the repositories and
// the realtime publisher
func NewServices(repos *repositories.Repositories, publisher realtime.Publisher, logger zerolog.Logger) *Services {
	notificationService := NewNotificationService(repos.NotificationRepository, publisher, logger)
	return &Services{
		Project:      NewProjectService(repos.ProjectRepository, repos.UserRepository, notificationService, logger),
		Message:      NewMessageService(repos.MessageRepository, repos.UserRepository, notificationService, logger),
		Notification: notificationService,
		User:         NewUserService(repos.UserRepository, logger),
		Admin:        NewAdminService(repos.UserRepository, repos.ProjectRepository, logger),
	}
}
