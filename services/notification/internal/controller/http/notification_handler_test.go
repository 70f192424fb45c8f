package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cusceda/pkg/jwt"
	"cusceda/pkg/logger"
	"cusceda/pkg/middleware"
	"cusceda/services/notification/internal/entity"
	"cusceda/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotificationUseCase struct {
	mock.Mock
}

var _ usecase.NotificationUseCase = (*MockNotificationUseCase)(nil)

func (m *MockNotificationUseCase) AggregateAndList(ctx context.Context, userID string) ([]entity.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Notification), args.Error(1)
}

func (m *MockNotificationUseCase) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Notification), args.Error(1)
}

func setupNotificationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestGetNotifications_Unauthorized(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, logger.New())

	router := setupNotificationTestRouter()
	router.GET("/admin/notifications", handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	mockUseCase.AssertNotCalled(t, "AggregateAndList", mock.Anything, mock.Anything)
}

func TestGetNotifications_InvalidTokenNeverReachesStore(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, logger.New())
	jwtService := jwt.NewService("test-secret-key")

	router := setupNotificationTestRouter()
	group := router.Group("", middleware.AuthMiddleware(jwtService))
	group.GET("/admin/notifications", handler.GetNotifications)
	group.PATCH("/admin/notifications", handler.MarkAsRead)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/notifications", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("PATCH", "/admin/notifications", bytes.NewBufferString(`{"id":"n-1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	mockUseCase.AssertNotCalled(t, "AggregateAndList", mock.Anything, mock.Anything)
	mockUseCase.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
}

func TestGetNotifications_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, logger.New())

	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	feed := []entity.Notification{
		{ID: "n-1", UserID: "admin-1", Type: entity.TypeOrder, Message: "New order ORD-1 received.", RelatedID: "o-1", CreatedAt: createdAt},
	}
	mockUseCase.On("AggregateAndList", mock.Anything, "admin-1").Return(feed, nil)

	router := setupNotificationTestRouter()
	router.GET("/admin/notifications", withUser("admin-1"), handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool                  `json:"success"`
		Data    []entity.Notification `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "n-1", response.Data[0].ID)
	assert.Equal(t, "o-1", response.Data[0].RelatedID)
	assert.False(t, response.Data[0].IsRead)
	mockUseCase.AssertExpectations(t)
}

func TestGetNotifications_ServerError(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, logger.New())
	mockUseCase.On("AggregateAndList", mock.Anything, "admin-1").Return(nil, errors.New("db down"))

	router := setupNotificationTestRouter()
	router.GET("/admin/notifications", withUser("admin-1"), handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Server error"}`, w.Body.String())
}

func TestMarkAsRead(t *testing.T) {
	readAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		body         string
		setupMock    func(*MockNotificationUseCase)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			body: `{"id":"n-1"}`,
			setupMock: func(m *MockNotificationUseCase) {
				m.On("MarkRead", mock.Anything, "n-1").Return(&entity.Notification{
					ID: "n-1", Type: entity.TypeStock, Message: "Only 2 units left of Lamp.", IsRead: true, CreatedAt: readAt, UpdatedAt: readAt,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing id",
			body:         `{}`,
			setupMock:    func(m *MockNotificationUseCase) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"error":"Notification ID required"}`,
		},
		{
			name:         "malformed body",
			body:         `{"id":`,
			setupMock:    func(m *MockNotificationUseCase) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"error":"Notification ID required"}`,
		},
		{
			name: "not found",
			body: `{"id":"missing"}`,
			setupMock: func(m *MockNotificationUseCase) {
				m.On("MarkRead", mock.Anything, "missing").Return(nil, entity.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"success":false,"error":"Notification not found"}`,
		},
		{
			name: "store failure",
			body: `{"id":"n-2"}`,
			setupMock: func(m *MockNotificationUseCase) {
				m.On("MarkRead", mock.Anything, "n-2").Return(nil, errors.New("connection reset"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"success":false,"error":"Failed to mark as read"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := new(MockNotificationUseCase)
			tt.setupMock(mockUseCase)
			handler := NewNotificationHandler(mockUseCase, nil, logger.New())

			router := setupNotificationTestRouter()
			router.PATCH("/admin/notifications", withUser("admin-1"), handler.MarkAsRead)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("PATCH", "/admin/notifications", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			mockUseCase.AssertExpectations(t)
		})
	}
}

func TestMarkAsRead_ResponseCarriesRecord(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, logger.New())
	mockUseCase.On("MarkRead", mock.Anything, "n-1").Return(&entity.Notification{
		ID: "n-1", Type: entity.TypeUser, Message: "Ada just signed up.", IsRead: true,
	}, nil)

	router := setupNotificationTestRouter()
	router.PATCH("/admin/notifications", withUser("admin-1"), handler.MarkAsRead)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/admin/notifications", bytes.NewBufferString(`{"id":"n-1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "n-1", data["id"])
	assert.Equal(t, true, data["isRead"])
}

func TestHandleWebSocket_Unauthorized(t *testing.T) {
	handler := NewNotificationHandler(new(MockNotificationUseCase), nil, logger.New())

	router := setupNotificationTestRouter()
	router.GET("/admin/notifications/ws", handler.HandleWebSocket)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/notifications/ws", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleWebSocket_NoRedis(t *testing.T) {
	handler := NewNotificationHandler(new(MockNotificationUseCase), nil, logger.New())

	router := setupNotificationTestRouter()
	router.GET("/admin/notifications/ws", withUser("admin-1"), handler.HandleWebSocket)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/notifications/ws", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
