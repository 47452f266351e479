package exists

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CheckAccountExists(ctx context.Context, username, email string) ([]string, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestExistsHandler(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		setupMock     func(s *mockService)
		wantConflicts []string
	}{
		{
			name:  "Оба поля свободны",
			query: "?username=frank&email=frank%40example.com",
			setupMock: func(s *mockService) {
				s.On("CheckAccountExists", mock.Anything, "frank", "frank@example.com").
					Return([]string(nil), nil)
			},
			wantConflicts: []string{},
		},
		{
			name:  "Почта занята",
			query: "?username=frank&email=frank%40example.com",
			setupMock: func(s *mockService) {
				s.On("CheckAccountExists", mock.Anything, "frank", "frank@example.com").
					Return([]string{"email"}, nil)
			},
			wantConflicts: []string{"email"},
		},
		{
			name:  "Пустые параметры",
			query: "",
			setupMock: func(s *mockService) {
				s.On("CheckAccountExists", mock.Anything, "", "").
					Return([]string(nil), nil)
			},
			wantConflicts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			tt.setupMock(service)
			handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), service)

			req := httptest.NewRequest(http.MethodGet, "/accounts/exists"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			var resp struct {
				Data struct {
					ConflictingFields []string `json:"conflicting_fields"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantConflicts, resp.Data.ConflictingFields)
			service.AssertExpectations(t)
		})
	}
}
