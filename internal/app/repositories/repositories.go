package repositories

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories is the container for all data access objects
type Repositories struct {
	UserRepository         *UserRepository
	ProjectRepository      *ProjectRepository
	MessageRepository      *MessageRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories creates all repositories over the application database
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		ProjectRepository:      NewProjectRepository(db),
		MessageRepository:      NewMessageRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
