package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/pkg/apperrors"
)

// In-memory store fakes backing the service tests.

type fakeProjectStore struct {
	projects   map[primitive.ObjectID]*models.Project
	replaceErr error
	replaces   int
}

func newFakeProjectStore(projects ...*models.Project) *fakeProjectStore {
	s := &fakeProjectStore{projects: make(map[primitive.ObjectID]*models.Project)}
	for _, p := range projects {
		copied := cloneProject(p)
		s.projects[copied.ID] = copied
	}
	return s
}

func cloneProject(p *models.Project) *models.Project {
	copied := *p
	copied.TechStack = append([]string(nil), p.TechStack...)
	copied.RequiredRoles = append([]models.RequiredRole(nil), p.RequiredRoles...)
	copied.Collaborators = append([]models.Collaborator(nil), p.Collaborators...)
	copied.JoinRequests = append([]models.JoinRequest(nil), p.JoinRequests...)
	return &copied
}

func (s *fakeProjectStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (s *fakeProjectStore) FindActive(_ context.Context, skip, limit int64) ([]models.Project, error) {
	var active []models.Project
	for _, p := range s.projects {
		if p.IsActive {
			active = append(active, *cloneProject(p))
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })
	if skip >= int64(len(active)) {
		return nil, nil
	}
	active = active[skip:]
	if limit < int64(len(active)) {
		active = active[:limit]
	}
	return active, nil
}

func (s *fakeProjectStore) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, p := range s.projects {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *fakeProjectStore) FindAll(_ context.Context) ([]models.Project, error) {
	all := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		all = append(all, *cloneProject(p))
	}
	return all, nil
}

func (s *fakeProjectStore) Insert(_ context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	project.CreatedAt = time.Now().UTC()
	project.UpdatedAt = project.CreatedAt
	s.projects[project.ID] = cloneProject(project)
	return nil
}

func (s *fakeProjectStore) Replace(_ context.Context, project *models.Project) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	if _, ok := s.projects[project.ID]; !ok {
		return apperrors.ErrProjectNotFound
	}
	s.replaces++
	project.UpdatedAt = time.Now().UTC()
	s.projects[project.ID] = cloneProject(project)
	return nil
}

func (s *fakeProjectStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.projects[id]; !ok {
		return apperrors.ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

type fakeUserStore struct {
	users []*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	return &fakeUserStore{users: users}
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) FindActive(_ context.Context) ([]models.User, error) {
	var active []models.User
	for _, u := range s.users {
		if !u.IsBlocked {
			active = append(active, *u)
		}
	}
	return active, nil
}

func (s *fakeUserStore) FindAll(_ context.Context) ([]models.User, error) {
	all := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, *u)
	}
	return all, nil
}

func (s *fakeUserStore) FindIDsExcept(_ context.Context, exclude primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, u := range s.users {
		if u.ID != exclude && !u.IsBlocked {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (s *fakeUserStore) Search(_ context.Context, skills []string, experience string) ([]models.User, error) {
	var matched []models.User
	for _, u := range s.users {
		if u.IsBlocked {
			continue
		}
		if experience != "" && u.Profile.Experience != experience {
			continue
		}
		if len(skills) > 0 && !hasAnySkill(u.Profile.Skills, skills) {
			continue
		}
		matched = append(matched, *u)
	}
	return matched, nil
}

func hasAnySkill(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func (s *fakeUserStore) FindSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserSummary, error) {
	summaries := make(map[primitive.ObjectID]*models.UserSummary)
	for _, id := range ids {
		for _, u := range s.users {
			if u.ID == id {
				summaries[id] = &models.UserSummary{ID: u.ID, Name: u.Name, Profile: u.Profile}
			}
		}
	}
	return summaries, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, profile models.Profile) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			u.Profile = profile
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) SetBlocked(_ context.Context, id primitive.ObjectID, blocked bool) error {
	for _, u := range s.users {
		if u.ID == id {
			u.IsBlocked = blocked
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

func (s *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

type fakeMessageStore struct {
	messages  []*models.Message
	insertErr error
}

func (s *fakeMessageStore) Insert(_ context.Context, message *models.Message) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}
	message.CreatedAt = time.Now().UTC()
	if message.MessageType == "" {
		message.MessageType = models.MessageTypeText
	}
	copied := *message
	s.messages = append(s.messages, &copied)
	return nil
}

func (s *fakeMessageStore) FindByRoom(_ context.Context, roomID string) ([]models.Message, error) {
	var found []models.Message
	for _, m := range s.messages {
		if m.RoomID == roomID {
			found = append(found, *m)
		}
	}
	return found, nil
}

func (s *fakeMessageStore) DistinctSenders(_ context.Context, roomID string) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]bool)
	var senders []primitive.ObjectID
	for _, m := range s.messages {
		if m.RoomID == roomID && !seen[m.Sender] {
			seen[m.Sender] = true
			senders = append(senders, m.Sender)
		}
	}
	return senders, nil
}

func (s *fakeMessageStore) DistinctRooms(_ context.Context, sender primitive.ObjectID) ([]string, error) {
	seen := make(map[string]bool)
	var rooms []string
	for _, m := range s.messages {
		if m.Sender == sender && !seen[m.RoomID] {
			seen[m.RoomID] = true
			rooms = append(rooms, m.RoomID)
		}
	}
	return rooms, nil
}

type fakeNotificationStore struct {
	notifications []*models.Notification
	insertErr     error
	inserts       int
}

func (s *fakeNotificationStore) Insert(_ context.Context, notification *models.Notification) error {
	s.inserts++
	if s.insertErr != nil {
		return s.insertErr
	}
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	notification.CreatedAt = time.Now().UTC()
	copied := *notification
	s.notifications = append(s.notifications, &copied)
	return nil
}

func (s *fakeNotificationStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Notification, error) {
	for _, n := range s.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotificationNotFound
}

func (s *fakeNotificationStore) FindByRecipient(_ context.Context, recipient primitive.ObjectID) ([]models.Notification, error) {
	var found []models.Notification
	for _, n := range s.notifications {
		if n.Recipient == recipient {
			found = append(found, *n)
		}
	}
	return found, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, id primitive.ObjectID) error {
	for _, n := range s.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (s *fakeNotificationStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

// fakePublisher records realtime publishes
type publishedEvent struct {
	Room    string
	Event   string
	Payload interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(room, event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{Room: room, Event: event, Payload: payload})
}

// recordingNotifier captures notifications without delivering them
type recordingNotifier struct {
	notifications []*models.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification *models.Notification) {
	n.notifications = append(n.notifications, notification)
}
