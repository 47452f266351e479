package activate

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lms-platform/internal/services/account"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ActivateAccount(ctx context.Context, activationKey string) error {
	args := m.Called(ctx, activationKey)
	return args.Error(0)
}

func TestActivateHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(s *mockService)
		wantStatus int
	}{
		{
			name: "Успешная активация",
			body: `{"activation_key":"known-key"}`,
			setupMock: func(s *mockService) {
				s.On("ActivateAccount", mock.Anything, "known-key").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Неизвестный ключ",
			body: `{"activation_key":"bogus"}`,
			setupMock: func(s *mockService) {
				s.On("ActivateAccount", mock.Anything, "bogus").Return(account.ErrNotAuthorized)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Пустой ключ",
			body:       `{"activation_key":""}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Некорректное тело запроса",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			if tt.setupMock != nil {
				tt.setupMock(service)
			}
			handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), service)

			req := httptest.NewRequest(http.MethodPost, "/accounts/activate", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			service.AssertExpectations(t)
		})
	}
}
