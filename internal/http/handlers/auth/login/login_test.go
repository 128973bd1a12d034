package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/studio-portfolio/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:        "valid login",
			requestBody: Request{Username: "admin", Password: "admin123"},
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, "admin", "admin123").Return("tok", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"OK","data":{"token":"tok","username":"admin"}}`,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "validation error",
			requestBody:    Request{Username: "admin"},
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody:       `{"status":"Error","error":"field password is a required field"}`,
		},
		{
			name:        "wrong password",
			requestBody: Request{Username: "admin", Password: "wrong"},
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, "admin", "wrong").Return("", auth.ErrInvalidCredentials).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `{"status":"Error","error":"invalid credentials"}`,
		},
		{
			name:        "service failure",
			requestBody: Request{Username: "admin", Password: "admin123"},
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, "admin", "admin123").Return("", errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"status":"Error","error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			tt.setupMock(svc)
			handler := New(newNoopLogger(), svc)

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
