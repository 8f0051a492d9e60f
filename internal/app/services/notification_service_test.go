package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/app/models/dto"
	"github.com/devconnect/backend/internal/pkg/apperrors"
	"github.com/devconnect/backend/internal/pkg/realtime"
)

func TestNotifyPersistsAndPublishes(t *testing.T) {
	store := &fakeNotificationStore{}
	publisher := &fakePublisher{}
	svc := NewNotificationService(store, publisher, zerolog.Nop())

	recipient := primitive.NewObjectID()
	svc.Notify(context.Background(), &models.Notification{
		Recipient: recipient,
		Type:      models.NotificationGeneral,
		Title:     "Welcome",
		Message:   "Welcome to the platform",
	})

	if len(store.notifications) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(store.notifications))
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.Room != realtime.UserRoom(recipient.Hex()) {
		t.Errorf("room = %s, want %s", event.Room, realtime.UserRoom(recipient.Hex()))
	}
	if event.Event != realtime.EventNewNotification {
		t.Errorf("event = %s, want %s", event.Event, realtime.EventNewNotification)
	}
}

func TestNotifySwallowsStoreFailure(t *testing.T) {
	store := &fakeNotificationStore{insertErr: errors.New("write concern failure")}
	publisher := &fakePublisher{}
	svc := NewNotificationService(store, publisher, zerolog.Nop())

	svc.Notify(context.Background(), &models.Notification{
		Recipient: primitive.NewObjectID(),
		Type:      models.NotificationGeneral,
		Title:     "Lost",
		Message:   "This one never lands",
	})

	if len(publisher.events) != 0 {
		t.Errorf("published despite persistence failure")
	}
}

func TestNotifyCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	store := &fakeNotificationStore{insertErr: errors.New("down")}
	svc := NewNotificationService(store, &fakePublisher{}, zerolog.Nop())

	for i := 0; i < 10; i++ {
		svc.Notify(context.Background(), &models.Notification{
			Recipient: primitive.NewObjectID(),
			Type:      models.NotificationGeneral,
			Title:     "x",
			Message:   "y",
		})
	}

	// breaker trips after 4 consecutive failures, so the store stops
	// seeing attempts well before the 10th notify
	if store.inserts >= 10 {
		t.Errorf("breaker never opened: %d inserts reached the store", store.inserts)
	}
}

func TestMarkAsReadRecipientOnly(t *testing.T) {
	recipient := primitive.NewObjectID()
	other := primitive.NewObjectID()

	store := &fakeNotificationStore{}
	if err := store.Insert(context.Background(), &models.Notification{
		Recipient: recipient,
		Type:      models.NotificationGeneral,
		Title:     "Unread",
		Message:   "Mark me",
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	id := store.notifications[0].ID

	svc := NewNotificationService(store, &fakePublisher{}, zerolog.Nop())

	if _, err := svc.MarkAsRead(context.Background(), other.Hex(), id.Hex()); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for non-recipient, got %v", err)
	}
	if store.notifications[0].Read {
		t.Fatalf("notification marked read by non-recipient")
	}

	resp, err := svc.MarkAsRead(context.Background(), recipient.Hex(), id.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Read {
		t.Errorf("response not marked read")
	}
	if !store.notifications[0].Read {
		t.Errorf("stored notification not marked read")
	}
}

func TestDeleteNotificationRecipientOnly(t *testing.T) {
	recipient := primitive.NewObjectID()
	other := primitive.NewObjectID()

	store := &fakeNotificationStore{}
	_ = store.Insert(context.Background(), &models.Notification{
		Recipient: recipient,
		Type:      models.NotificationGeneral,
		Title:     "Old",
		Message:   "Delete me",
	})
	id := store.notifications[0].ID

	svc := NewNotificationService(store, &fakePublisher{}, zerolog.Nop())

	if err := svc.DeleteNotification(context.Background(), other.Hex(), id.Hex()); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if len(store.notifications) != 1 {
		t.Fatalf("notification deleted by non-recipient")
	}

	if err := svc.DeleteNotification(context.Background(), recipient.Hex(), id.Hex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.notifications) != 0 {
		t.Errorf("notification still present after delete")
	}

	if err := svc.DeleteNotification(context.Background(), recipient.Hex(), id.Hex()); !errors.Is(err, apperrors.ErrNotificationNotFound) {
		t.Errorf("expected not found for deleted notification, got %v", err)
	}
}

func TestCreateNotificationPropagatesErrors(t *testing.T) {
	store := &fakeNotificationStore{insertErr: errors.New("down")}
	svc := NewNotificationService(store, &fakePublisher{}, zerolog.Nop())

	_, err := svc.CreateNotification(context.Background(), &dto.CreateNotificationRequest{
		Recipient: primitive.NewObjectID().Hex(),
		Type:      string(models.NotificationGeneral),
		Title:     "Explicit",
		Message:   "Must fail loudly",
	})
	if err == nil {
		t.Fatalf("expected error from explicit create, got nil")
	}
}

func TestCreateNotificationPushesToRecipient(t *testing.T) {
	store := &fakeNotificationStore{}
	publisher := &fakePublisher{}
	svc := NewNotificationService(store, publisher, zerolog.Nop())

	recipient := primitive.NewObjectID()
	related := primitive.NewObjectID()
	resp, err := svc.CreateNotification(context.Background(), &dto.CreateNotificationRequest{
		Recipient: recipient.Hex(),
		Type:      string(models.NotificationGeneral),
		Title:     "Heads up",
		Message:   "Something happened",
		RelatedID: related.Hex(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.RelatedID == nil || *resp.RelatedID != related.Hex() {
		t.Errorf("related id not carried through: %+v", resp.RelatedID)
	}
	if len(publisher.events) != 1 || publisher.events[0].Room != realtime.UserRoom(recipient.Hex()) {
		t.Errorf("notification not pushed to recipient room: %+v", publisher.events)
	}
}
