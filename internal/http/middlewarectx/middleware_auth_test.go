package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arqr-labs/halal-catalog/internal/http/middlewarectx"
	"github.com/arqr-labs/halal-catalog/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	adminUser := &models.User{UID: "admin-uid", Name: "Admin", Labels: []string{"admin"}}

	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(m *AuthServiceMock)
		wantStatus     int
		wantNextCalled bool
	}{
		{
			name:       "valid token passes user into context",
			authHeader: "Bearer good-token",
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "good-token").Return(adminUser, nil).Once()
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:       "missing header",
			authHeader: "",
			setupMocks: func(m *AuthServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			setupMocks: func(m *AuthServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "bad-token").Return(nil, errors.New("no active session")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMocks(authMock)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, adminUser.UID, r.Context().Value(middlewarectx.UserUID))
				assert.Equal(t, adminUser.Labels, r.Context().Value(middlewarectx.UserLabels))
				assert.Equal(t, "good-token", r.Context().Value(middlewarectx.Token))
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.JWTMiddleware(authMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			authMock.AssertExpectations(t)
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		labels         any
		wantStatus     int
		wantNextCalled bool
	}{
		{
			name:           "admin label passes",
			labels:         []string{"admin"},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:       "other labels rejected",
			labels:     []string{"viewer"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no labels in context rejected",
			labels:     nil,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.AdminOnlyMiddleware(newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			if tt.labels != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserLabels, tt.labels))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
		})
	}
}
