package info

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lms-platform/internal/models"
	"github.com/magabrotheeeer/lms-platform/internal/services/account"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) AccountInfo(ctx context.Context, username string) (*models.AccountInfo, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccountInfo), args.Error(1)
}

func requestWithUsername(username string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/accounts/"+username, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("username", username)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestInfoHandler(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		setupMock  func(s *mockService)
		wantStatus int
	}{
		{
			name:     "Успешное чтение информации",
			username: "frank",
			setupMock: func(s *mockService) {
				s.On("AccountInfo", mock.Anything, "frank").
					Return(&models.AccountInfo{Username: "frank", Email: "frank@example.com", IsActive: true}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "Учётная запись не найдена",
			username: "ghost",
			setupMock: func(s *mockService) {
				s.On("AccountInfo", mock.Anything, "ghost").
					Return(nil, account.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			tt.setupMock(service)
			handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), service)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, requestWithUsername(tt.username))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Data models.AccountInfo `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "frank", resp.Data.Username)
				assert.True(t, resp.Data.IsActive)
			}
			service.AssertExpectations(t)
		})
	}
}
