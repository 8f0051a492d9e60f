package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/db"
)

// MessageRepository provides access to the messages collection. Messages are
// append-only.
type MessageRepository struct {
	collection *mongo.Collection
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(database *mongo.Database) *MessageRepository {
	return &MessageRepository{
		collection: database.Collection(db.MessagesCollection),
	}
}

// Insert stores a new message and fills in its generated id
func (r *MessageRepository) Insert(ctx context.Context, message *models.Message) error {
	message.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		message.ID = id
	}
	return nil
}

// FindByRoom returns the messages of a room in chronological order
func (r *MessageRepository) FindByRoom(ctx context.Context, roomID string) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"roomId": roomID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

// DistinctSenders returns the distinct sender ids that have posted in a room
func (r *MessageRepository) DistinctSenders(ctx context.Context, roomID string) ([]primitive.ObjectID, error) {
	values, err := r.collection.Distinct(ctx, "sender", bson.M{"roomId": roomID})
	if err != nil {
		return nil, fmt.Errorf("failed to list room senders: %w", err)
	}

	senders := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			senders = append(senders, id)
		}
	}
	return senders, nil
}

// DistinctRooms returns the distinct room ids a user has sent messages to
func (r *MessageRepository) DistinctRooms(ctx context.Context, sender primitive.ObjectID) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "roomId", bson.M{"sender": sender})
	if err != nil {
		return nil, fmt.Errorf("failed to list user rooms: %w", err)
	}

	rooms := make([]string, 0, len(values))
	for _, v := range values {
		if room, ok := v.(string); ok {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}
