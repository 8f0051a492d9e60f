package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/app/models/dto"
)

func TestSendMessageDirectRoom(t *testing.T) {
	alice := newTestUser("alice")
	bob := newTestUser("bob")
	roomID := models.DirectRoomID(alice.ID, bob.ID)

	messageStore := &fakeMessageStore{}
	notifier := &recordingNotifier{}
	svc := NewMessageService(messageStore, newFakeUserStore(alice, bob), notifier, zerolog.Nop())

	resp, err := svc.SendMessage(context.Background(), alice.ID.Hex(), &dto.SendMessageRequest{
		RoomID:  roomID,
		Message: "hey, ready to pair?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.RoomID != roomID {
		t.Errorf("room = %s, want %s", resp.RoomID, roomID)
	}
	if resp.MessageType != string(models.MessageTypeText) {
		t.Errorf("message type = %s, want text", resp.MessageType)
	}
	if resp.Sender.Name != "alice" {
		t.Errorf("sender summary not populated: %+v", resp.Sender)
	}

	if len(messageStore.messages) != 1 {
		t.Fatalf("expected 1 stored message, got %d", len(messageStore.messages))
	}

	if len(notifier.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.notifications))
	}
	n := notifier.notifications[0]
	if n.Recipient != bob.ID {
		t.Errorf("recipient = %s, want bob %s", n.Recipient.Hex(), bob.ID.Hex())
	}
	if n.Type != models.NotificationMessage {
		t.Errorf("type = %s, want message", n.Type)
	}
}

func TestSendMessageGroupRoomNotifiesPriorSenders(t *testing.T) {
	alice := newTestUser("alice")
	bob := newTestUser("bob")
	carol := newTestUser("carol")
	const roomID = "gophers"

	messageStore := &fakeMessageStore{}
	// seed prior history so bob and carol count as room participants
	for _, sender := range []primitive.ObjectID{bob.ID, carol.ID, bob.ID} {
		_ = messageStore.Insert(context.Background(), &models.Message{
			RoomID: roomID,
			Sender: sender,
		})
	}

	notifier := &recordingNotifier{}
	svc := NewMessageService(messageStore, newFakeUserStore(alice, bob, carol), notifier, zerolog.Nop())

	if _, err := svc.SendMessage(context.Background(), alice.ID.Hex(), &dto.SendMessageRequest{
		RoomID:  roomID,
		Message: "standup in five",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recipients := map[primitive.ObjectID]bool{}
	for _, n := range notifier.notifications {
		recipients[n.Recipient] = true
	}
	if len(recipients) != 2 || !recipients[bob.ID] || !recipients[carol.ID] {
		t.Errorf("expected bob and carol notified exactly once each, got %v", recipients)
	}
	if recipients[alice.ID] {
		t.Errorf("sender notified about their own message")
	}
}

func TestSendMessageSenderExcludedFromHyphenRoom(t *testing.T) {
	alice := newTestUser("alice")
	bob := newTestUser("bob")
	roomID := models.DirectRoomID(alice.ID, bob.ID)

	notifier := &recordingNotifier{}
	svc := NewMessageService(&fakeMessageStore{}, newFakeUserStore(alice, bob), notifier, zerolog.Nop())

	if _, err := svc.SendMessage(context.Background(), bob.ID.Hex(), &dto.SendMessageRequest{
		RoomID:  roomID,
		Message: "on my way",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, n := range notifier.notifications {
		if n.Recipient == bob.ID {
			t.Errorf("sender received their own message notification")
		}
	}
}

func TestGetRoomMessagesPopulatesSenders(t *testing.T) {
	alice := newTestUser("alice")
	bob := newTestUser("bob")
	roomID := models.DirectRoomID(alice.ID, bob.ID)

	messageStore := &fakeMessageStore{}
	_ = messageStore.Insert(context.Background(), &models.Message{RoomID: roomID, Sender: alice.ID, Message: "hi"})
	_ = messageStore.Insert(context.Background(), &models.Message{RoomID: roomID, Sender: bob.ID, Message: "hello"})
	_ = messageStore.Insert(context.Background(), &models.Message{RoomID: "other", Sender: bob.ID, Message: "elsewhere"})

	svc := NewMessageService(messageStore, newFakeUserStore(alice, bob), &recordingNotifier{}, zerolog.Nop())

	resp, err := svc.GetRoomMessages(context.Background(), roomID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}
	if resp.Messages[0].Sender.Name != "alice" || resp.Messages[1].Sender.Name != "bob" {
		t.Errorf("sender summaries not populated: %+v", resp.Messages)
	}
}

func TestGetUserRooms(t *testing.T) {
	alice := newTestUser("alice")
	bob := newTestUser("bob")

	messageStore := &fakeMessageStore{}
	_ = messageStore.Insert(context.Background(), &models.Message{RoomID: "gophers", Sender: alice.ID})
	_ = messageStore.Insert(context.Background(), &models.Message{RoomID: "gophers", Sender: alice.ID})
	_ = messageStore.Insert(context.Background(), &models.Message{RoomID: "rustaceans", Sender: bob.ID})

	svc := NewMessageService(messageStore, newFakeUserStore(alice, bob), &recordingNotifier{}, zerolog.Nop())

	resp, err := svc.GetUserRooms(context.Background(), alice.ID.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Rooms) != 1 || resp.Rooms[0] != "gophers" {
		t.Errorf("rooms = %v, want [gophers]", resp.Rooms)
	}

	empty, err := svc.GetUserRooms(context.Background(), newTestUser("nobody").ID.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.Rooms == nil || len(empty.Rooms) != 0 {
		t.Errorf("expected empty non-nil room list, got %v", empty.Rooms)
	}
}
