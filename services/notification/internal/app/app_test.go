package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cusceda/pkg/config"
	"cusceda/pkg/database"
	"cusceda/pkg/jwt"
	"cusceda/pkg/logger"
	"cusceda/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type feedResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		ID        string `json:"id"`
		Type      string `json:"type"`
		Message   string `json:"message"`
		RelatedID string `json:"relatedId"`
		IsRead    bool   `json:"isRead"`
	} `json:"data"`
}

func setupApp(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		JWTSecret:                 "test-secret-key",
		NotificationRecentOrders:  10,
		NotificationRecentSignups: 5,
		NotificationLowStockLimit: 5,
	}
	token, err := jwt.NewService(cfg.JWTSecret).GenerateToken("admin-1", "admin")
	require.NoError(t, err)

	return NewRouter(cfg, logger.New(), db, nil), db, token
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := setupApp(t)

	w := doRequest(r, "GET", "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFeed_RequiresAuth(t *testing.T) {
	r, db, _ := setupApp(t)

	w := doRequest(r, "GET", "/api/v1/admin/notifications", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	w = doRequest(r, "PATCH", "/api/v1/admin/notifications", "", `{"id":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFeed_CustomerTokenForbidden(t *testing.T) {
	r, db, _ := setupApp(t)
	require.NoError(t, db.Create(&models.Contact{Name: "Grace"}).Error)

	customer, err := jwt.NewService("test-secret-key").GenerateToken("customer-7", "user")
	require.NoError(t, err)

	w := doRequest(r, "GET", "/api/v1/admin/notifications", customer, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, w.Body.String())

	w = doRequest(r, "PATCH", "/api/v1/admin/notifications", customer, `{"id":"x"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, "GET", "/api/v1/admin/notifications/ws?token="+customer, "", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFeed_EmptyStatePlaceholder(t *testing.T) {
	r, _, token := setupApp(t)

	w := doRequest(r, "GET", "/api/v1/admin/notifications", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp feedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "placeholder", resp.Data[0].ID)
	assert.Equal(t, "info", resp.Data[0].Type)
	assert.True(t, resp.Data[0].IsRead)
}

func TestFeed_ListThenMarkRead(t *testing.T) {
	r, db, token := setupApp(t)
	product := &models.Product{Name: "Desk Lamp", Stock: 2, UpdatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(product).Error)
	require.NoError(t, db.Create(&models.User{Email: "ada@example.com", Name: "Ada", Password: "x", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}).Error)

	w := doRequest(r, "GET", "/api/v1/admin/notifications", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp feedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Only 2 units left of Desk Lamp.", resp.Data[0].Message)
	assert.Equal(t, product.ID, resp.Data[0].RelatedID)
	assert.Equal(t, "Ada just signed up.", resp.Data[1].Message)

	w = doRequest(r, "PATCH", "/api/v1/admin/notifications", token, `{"id":"`+resp.Data[0].ID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var marked struct {
		Success bool `json:"success"`
		Data    struct {
			ID     string `json:"id"`
			IsRead bool   `json:"isRead"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &marked))
	assert.True(t, marked.Success)
	assert.Equal(t, resp.Data[0].ID, marked.Data.ID)
	assert.True(t, marked.Data.IsRead)

	w = doRequest(r, "GET", "/api/v1/admin/notifications", token, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data[0].IsRead)
	assert.False(t, resp.Data[1].IsRead)
}

func TestFeed_MarkReadErrors(t *testing.T) {
	r, _, token := setupApp(t)

	w := doRequest(r, "PATCH", "/api/v1/admin/notifications", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Notification ID required"}`, w.Body.String())

	w = doRequest(r, "PATCH", "/api/v1/admin/notifications", token, `{"id":"0b8f0a52-4a3f-4c36-9d55-1f7f5a0b8e21"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Notification not found"}`, w.Body.String())
}
