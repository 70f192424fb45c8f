package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"cusceda/pkg/logger"
	"cusceda/services/property/internal/entity"
	"cusceda/services/property/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPropertyUseCase struct {
	mock.Mock
}

var _ usecase.PropertyUseCase = (*MockPropertyUseCase)(nil)

func (m *MockPropertyUseCase) ListVisible(ctx context.Context) ([]entity.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Property), args.Error(1)
}

func (m *MockPropertyUseCase) Search(ctx context.Context, filter usecase.SearchFilter) (*usecase.SearchPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SearchPage), args.Error(1)
}

func (m *MockPropertyUseCase) GetProperty(ctx context.Context, id string) (*entity.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}

func (m *MockPropertyUseCase) Related(ctx context.Context, id string) ([]entity.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Property), args.Error(1)
}

func (m *MockPropertyUseCase) ListAdmin(ctx context.Context, q entity.AdminQuery) ([]entity.Property, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Property), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyUseCase) CreateProperty(ctx context.Context, userID string, in usecase.CreateInput) (*usecase.CreateResult, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateResult), args.Error(1)
}

func (m *MockPropertyUseCase) PatchProperty(ctx context.Context, id string, patch entity.PropertyPatch) (*entity.Property, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}

func (m *MockPropertyUseCase) ReplaceProperty(ctx context.Context, id string, in usecase.ReplaceInput) (*entity.Property, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}

func (m *MockPropertyUseCase) SetVisibility(ctx context.Context, id string, visible bool) (*entity.Property, error) {
	args := m.Called(ctx, id, visible)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}

func (m *MockPropertyUseCase) DeleteProperty(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupPropertyTestRouter(mockUseCase *MockPropertyUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewPropertyHandler(mockUseCase, logger.New())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "admin-1")
		c.Next()
	})
	router.GET("/properties", handler.ListProperties)
	router.GET("/properties/search", handler.SearchProperties)
	router.GET("/properties/:id", handler.GetProperty)
	router.GET("/properties/:id/related", handler.GetRelatedProperties)
	router.GET("/admin/properties", handler.ListAdminProperties)
	router.POST("/admin/properties", handler.CreateProperty)
	router.PUT("/admin/properties/:id", handler.UpdateProperty)
	router.PATCH("/admin/properties/:id", handler.SetVisibility)
	router.DELETE("/admin/properties/:id", handler.DeleteProperty)
	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListProperties_ReturnsRawArray(t *testing.T) {
	mockUseCase := new(MockPropertyUseCase)
	router := setupPropertyTestRouter(mockUseCase)

	mockUseCase.On("ListVisible", mock.Anything).Return([]entity.Property{{ID: "p1", Title: "Flat"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/properties", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "p1", body[0]["id"])
}

func TestSearchProperties_ParsesQuery(t *testing.T) {
	mockUseCase := new(MockPropertyUseCase)
	router := setupPropertyTestRouter(mockUseCase)

	mockUseCase.On("Search", mock.Anything, mock.MatchedBy(func(f usecase.SearchFilter) bool {
		return f.Query == "lekki" && f.Bedrooms == 2 && f.Page == 3 && f.Sort == "asc price"
	})).Return(&usecase.SearchPage{Properties: []entity.Property{}, Total: 60, Page: 3, TotalPages: 3}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/properties/search?search=lekki&bedrooms=2&page=3&sort=asc+price", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(60), body["total"])
	assert.Equal(t, float64(3), body["totalPages"])
	mockUseCase.AssertExpectations(t)
}

func TestGetProperty(t *testing.T) {
	tests := []struct {
		name       string
		result     *entity.Property
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        entity.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"Property not found"}`,
		},
		{
			name:       "store failure",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "found",
			result:     &entity.Property{ID: "p1", Title: "Duplex"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := new(MockPropertyUseCase)
			router := setupPropertyTestRouter(mockUseCase)

			if tt.result != nil {
				mockUseCase.On("GetProperty", mock.Anything, "p1").Return(tt.result, nil)
			} else {
				mockUseCase.On("GetProperty", mock.Anything, "p1").Return(nil, tt.err)
			}

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/properties/p1", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			if tt.result != nil {
				body := decodeBody(t, w)
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "Duplex", body["property"].(map[string]interface{})["title"])
			}
		})
	}
}

func TestGetRelatedProperties(t *testing.T) {
	mockUseCase := new(MockPropertyUseCase)
	router := setupPropertyTestRouter(mockUseCase)

	mockUseCase.On("Related", mock.Anything, "p1").Return([]entity.Property{{ID: "p2"}, {ID: "p3"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/properties/p1/related", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["properties"], 2)
}

func TestListAdminProperties_Defaults(t *testing.T) {
	mockUseCase := new(MockPropertyUseCase)
	router := setupPropertyTestRouter(mockUseCase)

	mockUseCase.On("ListAdmin", mock.Anything, entity.AdminQuery{Search: "abuja", Sort: "newest", Page: 1, Limit: 10}).
		Return([]entity.Property{{ID: "p1"}}, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/properties?search=abuja&sort=newest", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])
	mockUseCase.AssertExpectations(t)
}

func TestListAdminProperties_Failure(t *testing.T) {
	mockUseCase := new(MockPropertyUseCase)
	router := setupPropertyTestRouter(mockUseCase)

	mockUseCase.On("ListAdmin", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("db down"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/properties", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Failed to load properties"}`, w.Body.String())
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for field, names := range files {
		for _, name := range names {
			part, err := writer.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = part.Write([]byte("data"))
			require.NoError(t, err)
		}
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestCreateProperty_Success(t *testing.T) {
	mockUseCase := new(MockPropertyUseCase)
	router := setupPropertyTestRouter(mockUseCase)

	mockUseCase.On("CreateProperty", mock.Anything, "admin-1", mock.MatchedBy(func(in usecase.CreateInput) bool {
		return in.Form.Title == "Villa" && in.Form.Features == `["Pool"]` && len(in.Images) == 3 && len(in.Videos) == 0
	})).Return(&usecase.CreateResult{Property: &entity.Property{ID: "p1", Title: "Villa"}, Uploaded: 2, Received: 3}, nil)

	body, contentType := multipartBody(t,
		map[string]string{"title": "Villa", "features": `["Pool"]`},
		map[string][]string{"images": {"a.jpg", "b.jpg", "c.jpg"}},
	)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/properties", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Property uploaded successfully with 2/3 images!", resp["message"])
	mockUseCase.AssertExpectations(t)
}

func TestCreateProperty_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        entity.NewValidationError("Please add at least one feature."),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Please add at least one feature."}`,
		},
		{
			name:       "all uploads failed",
			err:        entity.ErrAllUploadsFailed,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"message":"All image uploads failed. Try again with smaller files."}`,
		},
		{
			name:       "store failure",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"message":"Failed to upload property"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := new(MockPropertyUseCase)
			router := setupPropertyTestRouter(mockUseCase)
			mockUseCase.On("CreateProperty", mock.Anything, "admin-1", mock.Anything).Return(nil, tt.err)

			body, contentType := multipartBody(t, map[string]string{"title": "Villa"}, nil)
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/admin/properties", body)
			req.Header.Set("Content-Type", contentType)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestUpdateProperty_JSONPatch(t *testing.T) {
	mockUseCase := new(MockPropertyUseCase)
	router := setupPropertyTestRouter(mockUseCase)

	mockUseCase.On("PatchProperty", mock.Anything, "p1", mock.MatchedBy(func(p entity.PropertyPatch) bool {
		return p.Price != nil && *p.Price == 1500 && p.Title == nil
	})).Return(&entity.Property{ID: "p1", Price: 1500}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/properties/p1", bytes.NewBufferString(`{"price":1500}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
	mockUseCase.AssertNotCalled(t, "ReplaceProperty", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProperty_MultipartReplace(t *testing.T) {
	mockUseCase := new(MockPropertyUseCase)
	router := setupPropertyTestRouter(mockUseCase)

	mockUseCase.On("ReplaceProperty", mock.Anything, "p1", mock.MatchedBy(func(in usecase.ReplaceInput) bool {
		return in.Visible && in.ExistingImages == `["https://cdn/a.jpg"]` && len(in.NewImages) == 1 && len(in.NewVideos) == 0
	})).Return(&entity.Property{ID: "p1"}, nil)

	body, contentType := multipartBody(t,
		map[string]string{"title": "Villa", "visible": "true", "existingImages": `["https://cdn/a.jpg"]`},
		map[string][]string{"newImages": {"b.jpg"}},
	)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/properties/p1", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdateProperty_NotFound(t *testing.T) {
	mockUseCase := new(MockPropertyUseCase)
	router := setupPropertyTestRouter(mockUseCase)

	mockUseCase.On("PatchProperty", mock.Anything, "missing", mock.Anything).Return(nil, entity.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/properties/missing", bytes.NewBufferString(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Property not found"}`, w.Body.String())
}

func TestSetVisibility(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *MockPropertyUseCase)
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing field",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Missing 'visible' field",
		},
		{
			name:       "non boolean",
			body:       `{"visible":"yes"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Missing 'visible' field",
		},
		{
			name: "not found",
			body: `{"visible":false}`,
			setup: func(m *MockPropertyUseCase) {
				m.On("SetVisibility", mock.Anything, "p1", false).Return(nil, entity.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantMsg:    "Not found",
		},
		{
			name: "hidden",
			body: `{"visible":false}`,
			setup: func(m *MockPropertyUseCase) {
				m.On("SetVisibility", mock.Anything, "p1", false).Return(&entity.Property{ID: "p1"}, nil)
			},
			wantStatus: http.StatusOK,
			wantMsg:    "Property visibility set to false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := new(MockPropertyUseCase)
			router := setupPropertyTestRouter(mockUseCase)
			if tt.setup != nil {
				tt.setup(mockUseCase)
			}

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("PATCH", "/admin/properties/p1", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeBody(t, w)["message"])
			if tt.setup == nil {
				mockUseCase.AssertNotCalled(t, "SetVisibility", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDeleteProperty(t *testing.T) {
	mockUseCase := new(MockPropertyUseCase)
	router := setupPropertyTestRouter(mockUseCase)

	mockUseCase.On("DeleteProperty", mock.Anything, "p1").Return(nil)
	mockUseCase.On("DeleteProperty", mock.Anything, "gone").Return(entity.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/properties/p1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Property deleted"}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/admin/properties/gone", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not found"}`, w.Body.String())
}
