package register

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lms-platform/internal/lib/validation"
	"github.com/magabrotheeeer/lms-platform/internal/services/account"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateAccount(ctx context.Context, username, password, email string) (string, error) {
	args := m.Called(ctx, username, password, email)
	return args.String(0), args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(s *mockService)
		wantStatus int
	}{
		{
			name: "Успешное создание учётной записи",
			body: `{"username":"frank","password":"secret","email":"frank@example.com"}`,
			setupMock: func(s *mockService) {
				s.On("CreateAccount", mock.Anything, "frank", "secret", "frank@example.com").
					Return("activation-key", nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Некорректное тело запроса",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Отсутствует обязательное поле",
			body:       `{"username":"frank","password":"secret"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Недопустимое имя пользователя",
			body: `{"username":"f","password":"secret","email":"frank@example.com"}`,
			setupMock: func(s *mockService) {
				s.On("CreateAccount", mock.Anything, "f", "secret", "frank@example.com").
					Return("", validation.ErrUsernameInvalid)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Имя или почта уже заняты",
			body: `{"username":"frank","password":"secret","email":"frank@example.com"}`,
			setupMock: func(s *mockService) {
				s.On("CreateAccount", mock.Anything, "frank", "secret", "frank@example.com").
					Return("", account.ErrAccountExists)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "Внутренняя ошибка сервиса",
			body: `{"username":"frank","password":"secret","email":"frank@example.com"}`,
			setupMock: func(s *mockService) {
				s.On("CreateAccount", mock.Anything, "frank", "secret", "frank@example.com").
					Return("", errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			if tt.setupMock != nil {
				tt.setupMock(service)
			}
			handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), service)

			req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Status string `json:"status"`
					Data   struct {
						Username      string `json:"username"`
						ActivationKey string `json:"activation_key"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "OK", resp.Status)
				assert.Equal(t, "frank", resp.Data.Username)
				assert.Equal(t, "activation-key", resp.Data.ActivationKey)
			}
			service.AssertExpectations(t)
		})
	}
}
