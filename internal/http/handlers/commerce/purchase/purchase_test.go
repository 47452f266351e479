package purchase

import (
	"bytes"
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

	"github.com/magabrotheeeer/lms-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lms-platform/internal/services/commerce"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Purchase(ctx context.Context, username, email, courseID string) (*commerce.Result, error) {
	args := m.Called(ctx, username, email, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Result), args.Error(1)
}

func authenticatedRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewBufferString(body))
	ctx := context.WithValue(req.Context(), middlewarectx.User, "frank")
	ctx = context.WithValue(ctx, middlewarectx.Email, "frank@example.com")
	return req.WithContext(ctx)
}

func TestPurchaseHandler(t *testing.T) {
	const body = `{"course_id":"course-v1:acme+CS101+2026"}`

	tests := []struct {
		name       string
		request    *http.Request
		setupMock  func(s *mockService)
		wantStatus int
		wantDetail string
	}{
		{
			name:    "Прямая запись на бесплатный курс",
			request: authenticatedRequest(body),
			setupMock: func(s *mockService) {
				s.On("Purchase", mock.Anything, "frank", "frank@example.com", "course-v1:acme+CS101+2026").
					Return(&commerce.Result{Status: commerce.StatusEnrolled}, nil)
			},
			wantStatus: http.StatusOK,
			wantDetail: "enrolled",
		},
		{
			name:    "Заказ уже завершён",
			request: authenticatedRequest(body),
			setupMock: func(s *mockService) {
				s.On("Purchase", mock.Anything, "frank", "frank@example.com", "course-v1:acme+CS101+2026").
					Return(&commerce.Result{Status: commerce.StatusOrderComplete, OrderNumber: "ORD-100"}, nil)
			},
			wantStatus: http.StatusOK,
			wantDetail: "order complete",
		},
		{
			name:    "Заказ создан и ожидает оплаты",
			request: authenticatedRequest(body),
			setupMock: func(s *mockService) {
				s.On("Purchase", mock.Anything, "frank", "frank@example.com", "course-v1:acme+CS101+2026").
					Return(&commerce.Result{Status: commerce.StatusOrderPending, OrderNumber: "ORD-101", OrderStatus: "Open"}, nil)
			},
			wantStatus: http.StatusAccepted,
			wantDetail: "order created, awaiting payment",
		},
		{
			name:    "Курс не найден",
			request: authenticatedRequest(body),
			setupMock: func(s *mockService) {
				s.On("Purchase", mock.Anything, "frank", "frank@example.com", "course-v1:acme+CS101+2026").
					Return(nil, commerce.ErrCourseNotFound)
			},
			wantStatus: http.StatusNotAcceptable,
			wantDetail: "course not found",
		},
		{
			name:    "Сервис заказов недоступен",
			request: authenticatedRequest(body),
			setupMock: func(s *mockService) {
				s.On("Purchase", mock.Anything, "frank", "frank@example.com", "course-v1:acme+CS101+2026").
					Return(nil, commerce.ErrProviderUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantDetail: "order service is unavailable, please try again later",
		},
		{
			name:       "Отсутствует course_id",
			request:    authenticatedRequest(`{}`),
			wantStatus: http.StatusBadRequest,
			wantDetail: "course_id is required",
		},
		{
			name:       "Неаутентифицированный запрос",
			request:    httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewBufferString(body)),
			wantStatus: http.StatusUnauthorized,
			wantDetail: "authentication required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			if tt.setupMock != nil {
				tt.setupMock(service)
			}
			handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), service)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, tt.request)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var resp struct {
				Detail      string `json:"detail"`
				OrderNumber string `json:"order_number"`
				OrderStatus string `json:"order_status"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantDetail, resp.Detail)
			if tt.wantStatus == http.StatusAccepted {
				assert.Equal(t, "ORD-101", resp.OrderNumber)
				assert.Equal(t, "Open", resp.OrderStatus)
			}
			service.AssertExpectations(t)
		})
	}
}
