package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/backend/internal/app/models"
	"github.com/devconnect/backend/internal/app/models/dto"
	"github.com/devconnect/backend/internal/pkg/apperrors"
)

func newTestUser(name string) *models.User {
	return &models.User{
		ID:        primitive.NewObjectID(),
		Email:     name + "@example.com",
		Name:      name,
		Role:      models.RoleDeveloper,
		CreatedAt: time.Now().UTC(),
	}
}

func newTestProject(owner primitive.ObjectID) *models.Project {
	return &models.Project{
		ID:            primitive.NewObjectID(),
		Title:         "Realtime Dashboard",
		Description:   "A dashboard for realtime metrics",
		Owner:         owner,
		TechStack:     []string{"Go", "MongoDB"},
		RequiredRoles: []models.RequiredRole{{Role: models.RoleBackend}, {Role: models.RoleFrontend}},
		Status:        models.ProjectStatusIdea,
		Collaborators: []models.Collaborator{},
		JoinRequests:  []models.JoinRequest{},
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestRequestToJoin(t *testing.T) {
	owner := newTestUser("owner")
	requester := newTestUser("requester")
	rejected := newTestUser("rejected")

	project := newTestProject(owner.ID)
	project.JoinRequests = []models.JoinRequest{{
		ID:      primitive.NewObjectID(),
		User:    rejected.ID,
		Role:    string(models.RoleBackend),
		Status:  models.JoinRequestRejected,
		CreatedAt: time.Now().UTC(),
	}}

	tests := []struct {
		name    string
		caller  string
		project string
		wantErr error
	}{
		{
			name:    "first request succeeds",
			caller:  requester.ID.Hex(),
			project: project.ID.Hex(),
		},
		{
			name:    "rejected user cannot reapply",
			caller:  rejected.ID.Hex(),
			project: project.ID.Hex(),
			wantErr: apperrors.ErrDuplicateRequest,
		},
		{
			name:    "unknown project",
			caller:  requester.ID.Hex(),
			project: primitive.NewObjectID().Hex(),
			wantErr: apperrors.ErrProjectNotFound,
		},
		{
			name:    "malformed project id",
			caller:  requester.ID.Hex(),
			project: "not-a-hex-id",
			wantErr: apperrors.ErrProjectNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projectStore := newFakeProjectStore(project)
			userStore := newFakeUserStore(owner, requester, rejected)
			notifier := &recordingNotifier{}
			svc := NewProjectService(projectStore, userStore, notifier, zerolog.Nop())

			resp, err := svc.RequestToJoin(context.Background(), tt.caller, tt.project, &dto.JoinProjectRequest{
				Role:    string(models.RoleBackend),
				Message: "I'd like to help",
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(resp.JoinRequests) != 2 {
				t.Fatalf("expected 2 join requests, got %d", len(resp.JoinRequests))
			}
			added := resp.JoinRequests[1]
			if added.Status != string(models.JoinRequestPending) {
				t.Errorf("new request status = %s, want pending", added.Status)
			}
			if added.User.ID != tt.caller {
				t.Errorf("new request user = %s, want %s", added.User.ID, tt.caller)
			}

			if len(notifier.notifications) != 1 {
				t.Fatalf("expected 1 notification, got %d", len(notifier.notifications))
			}
			n := notifier.notifications[0]
			if n.Recipient != owner.ID {
				t.Errorf("notification recipient = %s, want owner %s", n.Recipient.Hex(), owner.ID.Hex())
			}
			if n.Type != models.NotificationJoinRequest {
				t.Errorf("notification type = %s, want %s", n.Type, models.NotificationJoinRequest)
			}
		})
	}
}

func TestRequestToJoinDuplicatePending(t *testing.T) {
	owner := newTestUser("owner")
	requester := newTestUser("requester")
	project := newTestProject(owner.ID)

	projectStore := newFakeProjectStore(project)
	userStore := newFakeUserStore(owner, requester)
	notifier := &recordingNotifier{}
	svc := NewProjectService(projectStore, userStore, notifier, zerolog.Nop())

	req := &dto.JoinProjectRequest{Role: string(models.RoleBackend)}
	if _, err := svc.RequestToJoin(context.Background(), requester.ID.Hex(), project.ID.Hex(), req); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	_, err := svc.RequestToJoin(context.Background(), requester.ID.Hex(), project.ID.Hex(), req)
	if !errors.Is(err, apperrors.ErrDuplicateRequest) {
		t.Fatalf("expected duplicate request error, got %v", err)
	}

	stored, _ := projectStore.FindByID(context.Background(), project.ID)
	if len(stored.JoinRequests) != 1 {
		t.Errorf("expected 1 stored join request, got %d", len(stored.JoinRequests))
	}
}

func TestRespondToJoinRequest(t *testing.T) {
	owner := newTestUser("owner")
	requester := newTestUser("requester")
	outsider := newTestUser("outsider")

	setup := func() (*fakeProjectStore, *recordingNotifier, ProjectService, *models.Project, primitive.ObjectID) {
		project := newTestProject(owner.ID)
		requestID := primitive.NewObjectID()
		project.JoinRequests = []models.JoinRequest{{
			ID:        requestID,
			User:      requester.ID,
			Role:      string(models.RoleBackend),
			Status:    models.JoinRequestPending,
			CreatedAt: time.Now().UTC(),
		}}
		projectStore := newFakeProjectStore(project)
		notifier := &recordingNotifier{}
		svc := NewProjectService(projectStore, newFakeUserStore(owner, requester, outsider), notifier, zerolog.Nop())
		return projectStore, notifier, svc, project, requestID
	}

	t.Run("accept adds collaborator and fills role", func(t *testing.T) {
		projectStore, notifier, svc, project, requestID := setup()

		resp, err := svc.RespondToJoinRequest(context.Background(), owner.ID.Hex(), project.ID.Hex(), &dto.RespondJoinRequest{
			RequestID: requestID.Hex(),
			Status:    string(models.JoinRequestAccepted),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(resp.Collaborators) != 1 {
			t.Fatalf("expected 1 collaborator, got %d", len(resp.Collaborators))
		}
		if resp.Collaborators[0].User.ID != requester.ID.Hex() {
			t.Errorf("collaborator = %s, want %s", resp.Collaborators[0].User.ID, requester.ID.Hex())
		}
		if resp.JoinRequests[0].Status != string(models.JoinRequestAccepted) {
			t.Errorf("request status = %s, want accepted", resp.JoinRequests[0].Status)
		}

		stored, _ := projectStore.FindByID(context.Background(), project.ID)
		backend := stored.RequiredRoles[0]
		if !backend.Filled || backend.FilledBy == nil || *backend.FilledBy != requester.ID {
			t.Errorf("backend role not filled by requester: %+v", backend)
		}
		if stored.RequiredRoles[1].Filled {
			t.Errorf("frontend role unexpectedly filled")
		}

		if len(notifier.notifications) != 1 || notifier.notifications[0].Type != models.NotificationJoinApproved {
			t.Fatalf("expected one approval notification, got %+v", notifier.notifications)
		}
		if notifier.notifications[0].Recipient != requester.ID {
			t.Errorf("approval recipient = %s, want requester", notifier.notifications[0].Recipient.Hex())
		}
	})

	t.Run("accept without matching open role keeps roles unchanged", func(t *testing.T) {
		projectStore, _, svc, project, requestID := setup()
		stored := projectStore.projects[project.ID]
		stored.RequiredRoles[0].Filled = true
		filledBy := outsider.ID
		stored.RequiredRoles[0].FilledBy = &filledBy

		resp, err := svc.RespondToJoinRequest(context.Background(), owner.ID.Hex(), project.ID.Hex(), &dto.RespondJoinRequest{
			RequestID: requestID.Hex(),
			Status:    string(models.JoinRequestAccepted),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(resp.Collaborators) != 1 {
			t.Fatalf("expected collaborator added even without open role")
		}
		after, _ := projectStore.FindByID(context.Background(), project.ID)
		if *after.RequiredRoles[0].FilledBy != outsider.ID {
			t.Errorf("filled role was overwritten")
		}
		if after.RequiredRoles[1].Filled {
			t.Errorf("frontend role filled despite role mismatch")
		}
	})

	t.Run("reject flips status only", func(t *testing.T) {
		projectStore, notifier, svc, project, requestID := setup()

		resp, err := svc.RespondToJoinRequest(context.Background(), owner.ID.Hex(), project.ID.Hex(), &dto.RespondJoinRequest{
			RequestID: requestID.Hex(),
			Status:    string(models.JoinRequestRejected),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(resp.Collaborators) != 0 {
			t.Errorf("expected no collaborators after rejection")
		}
		if resp.JoinRequests[0].Status != string(models.JoinRequestRejected) {
			t.Errorf("request status = %s, want rejected", resp.JoinRequests[0].Status)
		}
		stored, _ := projectStore.FindByID(context.Background(), project.ID)
		if stored.RequiredRoles[0].Filled {
			t.Errorf("role filled after rejection")
		}
		if len(notifier.notifications) != 1 || notifier.notifications[0].Type != models.NotificationJoinRejected {
			t.Fatalf("expected one rejection notification, got %+v", notifier.notifications)
		}
	})

	t.Run("non-owner is rejected and project unchanged", func(t *testing.T) {
		projectStore, notifier, svc, project, requestID := setup()

		_, err := svc.RespondToJoinRequest(context.Background(), outsider.ID.Hex(), project.ID.Hex(), &dto.RespondJoinRequest{
			RequestID: requestID.Hex(),
			Status:    string(models.JoinRequestAccepted),
		})
		if !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Fatalf("expected permission denied, got %v", err)
		}

		stored, _ := projectStore.FindByID(context.Background(), project.ID)
		if stored.JoinRequests[0].Status != models.JoinRequestPending {
			t.Errorf("request status changed by unauthorized caller")
		}
		if len(stored.Collaborators) != 0 || len(notifier.notifications) != 0 {
			t.Errorf("side effects from unauthorized caller")
		}
	})

	t.Run("unknown request id", func(t *testing.T) {
		_, _, svc, project, _ := setup()

		_, err := svc.RespondToJoinRequest(context.Background(), owner.ID.Hex(), project.ID.Hex(), &dto.RespondJoinRequest{
			RequestID: primitive.NewObjectID().Hex(),
			Status:    string(models.JoinRequestAccepted),
		})
		if !errors.Is(err, apperrors.ErrJoinRequestNotFound) {
			t.Fatalf("expected join request not found, got %v", err)
		}
	})

	t.Run("already resolved request", func(t *testing.T) {
		_, _, svc, project, requestID := setup()

		if _, err := svc.RespondToJoinRequest(context.Background(), owner.ID.Hex(), project.ID.Hex(), &dto.RespondJoinRequest{
			RequestID: requestID.Hex(),
			Status:    string(models.JoinRequestRejected),
		}); err != nil {
			t.Fatalf("first response failed: %v", err)
		}

		_, err := svc.RespondToJoinRequest(context.Background(), owner.ID.Hex(), project.ID.Hex(), &dto.RespondJoinRequest{
			RequestID: requestID.Hex(),
			Status:    string(models.JoinRequestAccepted),
		})
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Fatalf("expected bad request for resolved request, got %v", err)
		}
	})
}

func TestUpdateProjectStatus(t *testing.T) {
	owner := newTestUser("owner")
	collaborator := newTestUser("collaborator")
	outsider := newTestUser("outsider")

	tests := []struct {
		name    string
		caller  string
		status  string
		wantErr error
	}{
		{name: "owner may update", caller: owner.ID.Hex(), status: string(models.ProjectStatusInProgress)},
		{name: "collaborator may update", caller: collaborator.ID.Hex(), status: string(models.ProjectStatusCompleted)},
		{name: "outsider is rejected", caller: outsider.ID.Hex(), status: string(models.ProjectStatusCompleted), wantErr: apperrors.ErrPermissionDenied},
		{name: "invalid status", caller: owner.ID.Hex(), status: "Shipped", wantErr: apperrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := newTestProject(owner.ID)
			project.Collaborators = []models.Collaborator{{
				User:     collaborator.ID,
				Role:     string(models.RoleBackend),
				JoinedAt: time.Now().UTC(),
			}}
			projectStore := newFakeProjectStore(project)
			svc := NewProjectService(projectStore, newFakeUserStore(owner, collaborator, outsider), &recordingNotifier{}, zerolog.Nop())

			resp, err := svc.UpdateProjectStatus(context.Background(), tt.caller, project.ID.Hex(), tt.status)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				stored, _ := projectStore.FindByID(context.Background(), project.ID)
				if stored.Status != models.ProjectStatusIdea {
					t.Errorf("status changed despite error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Status != tt.status {
				t.Errorf("status = %s, want %s", resp.Status, tt.status)
			}
		})
	}
}

func TestCreateProjectFanOut(t *testing.T) {
	owner := newTestUser("owner")
	dev1 := newTestUser("dev1")
	dev2 := newTestUser("dev2")
	blocked := newTestUser("blocked")
	blocked.IsBlocked = true

	projectStore := newFakeProjectStore()
	notifier := &recordingNotifier{}
	svc := NewProjectService(projectStore, newFakeUserStore(owner, dev1, dev2, blocked), notifier, zerolog.Nop())

	resp, err := svc.CreateProject(context.Background(), owner.ID.Hex(), &dto.CreateProjectRequest{
		Title:         "CLI Task Runner",
		Description:   "Task runner with watch mode",
		TechStack:     []string{"Go"},
		RequiredRoles: []dto.RequiredRoleRequest{{Role: string(models.RoleBackend)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Status != string(models.ProjectStatusIdea) {
		t.Errorf("default status = %s, want Idea", resp.Status)
	}
	if !resp.IsActive {
		t.Errorf("new project should be active")
	}
	if resp.Owner.ID != owner.ID.Hex() {
		t.Errorf("owner = %s, want %s", resp.Owner.ID, owner.ID.Hex())
	}

	if len(notifier.notifications) != 2 {
		t.Fatalf("expected 2 fan-out notifications, got %d", len(notifier.notifications))
	}
	recipients := map[primitive.ObjectID]bool{}
	for _, n := range notifier.notifications {
		if n.Type != models.NotificationProjectPost {
			t.Errorf("notification type = %s, want %s", n.Type, models.NotificationProjectPost)
		}
		recipients[n.Recipient] = true
	}
	if recipients[owner.ID] {
		t.Errorf("owner received their own project notification")
	}
	if recipients[blocked.ID] {
		t.Errorf("blocked user received a notification")
	}
	if !recipients[dev1.ID] || !recipients[dev2.ID] {
		t.Errorf("expected dev1 and dev2 to be notified, got %v", recipients)
	}
}

func TestDeleteProjectAuthorization(t *testing.T) {
	owner := newTestUser("owner")
	admin := newTestUser("admin")
	admin.Role = models.RoleAdmin
	outsider := newTestUser("outsider")

	tests := []struct {
		name    string
		caller  *models.User
		role    string
		wantErr error
	}{
		{name: "owner deletes", caller: owner, role: string(models.RoleDeveloper)},
		{name: "admin deletes", caller: admin, role: string(models.RoleAdmin)},
		{name: "outsider rejected", caller: outsider, role: string(models.RoleDeveloper), wantErr: apperrors.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := newTestProject(owner.ID)
			projectStore := newFakeProjectStore(project)
			svc := NewProjectService(projectStore, newFakeUserStore(owner, admin, outsider), &recordingNotifier{}, zerolog.Nop())

			err := svc.DeleteProject(context.Background(), tt.caller.ID.Hex(), tt.role, project.ID.Hex())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				if _, err := projectStore.FindByID(context.Background(), project.ID); err != nil {
					t.Errorf("project deleted by unauthorized caller")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := projectStore.FindByID(context.Background(), project.ID); !errors.Is(err, apperrors.ErrProjectNotFound) {
				t.Errorf("project still present after delete")
			}
		})
	}
}

func TestJoinLifecycleEndToEnd(t *testing.T) {
	owner := newTestUser("owner")
	requester := newTestUser("requester")

	projectStore := newFakeProjectStore()
	notifier := &recordingNotifier{}
	svc := NewProjectService(projectStore, newFakeUserStore(owner, requester), notifier, zerolog.Nop())

	created, err := svc.CreateProject(context.Background(), owner.ID.Hex(), &dto.CreateProjectRequest{
		Title:         "Chat Relay",
		Description:   "Room based chat relay",
		RequiredRoles: []dto.RequiredRoleRequest{{Role: string(models.RoleBackend)}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	joined, err := svc.RequestToJoin(context.Background(), requester.ID.Hex(), created.ID, &dto.JoinProjectRequest{
		Role: string(models.RoleBackend),
	})
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	final, err := svc.RespondToJoinRequest(context.Background(), owner.ID.Hex(), created.ID, &dto.RespondJoinRequest{
		RequestID: joined.JoinRequests[0].ID,
		Status:    string(models.JoinRequestAccepted),
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	if len(final.Collaborators) != 1 || final.Collaborators[0].User.ID != requester.ID.Hex() {
		t.Fatalf("requester not a collaborator: %+v", final.Collaborators)
	}
	if !final.RequiredRoles[0].Filled {
		t.Errorf("backend role not marked filled")
	}
	if final.JoinRequests[0].Status != string(models.JoinRequestAccepted) {
		t.Errorf("join request not accepted")
	}
}
