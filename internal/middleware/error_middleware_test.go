package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/backend/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "project not found sentinel",
			err:         apperrors.ErrProjectNotFound,
			wantStatus:  404,
			wantCode:    "RES_001",
			wantMessage: "project not found",
		},
		{
			name:        "forbidden with custom message",
			err:         apperrors.NewForbiddenError("Not authorized to respond to join requests"),
			wantStatus:  403,
			wantCode:    "AUTHZ_001",
			wantMessage: "Not authorized to respond to join requests",
		},
		{
			name:        "duplicate join request",
			err:         apperrors.NewDuplicateRequestError("You have already sent a join request for this project"),
			wantStatus:  400,
			wantCode:    "RES_003",
			wantMessage: "You have already sent a join request for this project",
		},
		{
			name:        "expired token",
			err:         apperrors.ErrTokenExpired,
			wantStatus:  401,
			wantCode:    "AUTH_002",
			wantMessage: "Token expired",
		},
		{
			name:        "validation failure",
			err:         apperrors.NewValidationError("Invalid project status"),
			wantStatus:  400,
			wantCode:    "VAL_001",
			wantMessage: "Invalid project status",
		},
		{
			name:        "blocked user",
			err:         apperrors.ErrUserBlocked,
			wantStatus:  403,
			wantCode:    "AUTHZ_001",
			wantMessage: "user is blocked",
		},
		{
			name:        "bad request with custom message",
			err:         apperrors.NewBadRequestError("Join request has already been resolved"),
			wantStatus:  400,
			wantCode:    "VAL_001",
			wantMessage: "Join request has already been resolved",
		},
		{
			name:        "unknown error is internal",
			err:         errors.New("connection reset"),
			wantStatus:  500,
			wantCode:    "SRV_001",
			wantMessage: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			HandleAPIError(c, tt.err)

			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.wantCode)
			}
			if body.Error.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Error.Message, tt.wantMessage)
			}
		})
	}
}
