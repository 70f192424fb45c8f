package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"cusceda/pkg/logger"
	"cusceda/services/property/internal/entity"
	"cusceda/services/property/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	propertyUseCase usecase.PropertyUseCase
	logger          *logger.Logger
}

func NewPropertyHandler(propertyUseCase usecase.PropertyUseCase, logger *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		propertyUseCase: propertyUseCase,
		logger:          logger,
	}
}

// ListProperties godoc
// @Summary      List visible properties
// @Description  Returns every visible property, newest first
// @Tags         properties
// @Produce      json
// @Success      200  {array}   entity.Property
// @Failure      500  {object}  map[string]interface{}
// @Router       /properties [get]
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	properties, err := h.propertyUseCase.ListVisible(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list properties: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch properties"})
		return
	}

	c.JSON(http.StatusOK, properties)
}

// SearchProperties godoc
// @Summary      Search properties
// @Tags         properties
// @Produce      json
// @Param        query     query string false "Text matched against title, address, city and state"
// @Param        type      query string false "Listing type" Enums(Rent, Sale, Shortlet)
// @Param        category  query string false "Category"
// @Param        state     query string false "State"
// @Param        bedrooms  query int    false "Minimum bedrooms"
// @Param        bathrooms query int    false "Minimum bathrooms"
// @Param        toilets   query int    false "Minimum toilets"
// @Param        area      query int    false "Minimum area"
// @Param        feature   query string false "Required feature"
// @Param        min       query number false "Minimum price"
// @Param        max       query number false "Maximum price"
// @Param        sort      query string false "Sort order" Enums(asc price, desc price, asc date, desc date)
// @Param        page      query int    false "Page number"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /properties/search [get]
func (h *PropertyHandler) SearchProperties(c *gin.Context) {
	filter := usecase.ParseSearchFilter(c.Request.URL.Query())

	page, err := h.propertyUseCase.Search(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to search properties: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to search properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"properties": page.Properties,
		"total":      page.Total,
		"page":       page.Page,
		"totalPages": page.TotalPages,
	})
}

// GetProperty godoc
// @Summary      Get property by ID
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]interface{}
// @Router       /properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	property, err := h.propertyUseCase.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
			return
		}
		h.logger.Error("Failed to get property %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "property": property})
}

// GetRelatedProperties godoc
// @Summary      Related properties
// @Description  Up to four visible properties sharing the category or city
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /properties/{id}/related [get]
func (h *PropertyHandler) GetRelatedProperties(c *gin.Context) {
	related, err := h.propertyUseCase.Related(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
			return
		}
		h.logger.Error("Failed to get related properties for %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch related properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "properties": related})
}

// ListAdminProperties godoc
// @Summary      Admin property table
// @Tags         admin-properties
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Matches title, city, state or category"
// @Param        type   query string false "Listing type"
// @Param        sort   query string false "Sort order" Enums(price-asc, price-desc, newest)
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /admin/properties [get]
func (h *PropertyHandler) ListAdminProperties(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	properties, total, err := h.propertyUseCase.ListAdmin(c.Request.Context(), entity.AdminQuery{
		Search: c.Query("search"),
		Type:   c.Query("type"),
		Sort:   c.Query("sort"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.logger.Error("Failed to load admin properties: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "properties": properties, "total": total})
}

// CreateProperty godoc
// @Summary      Upload a property
// @Tags         admin-properties
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title       formData string true  "Title"
// @Param        description formData string true  "Description"
// @Param        price       formData number true  "Price"
// @Param        type        formData string false "Listing type" Enums(Rent, Sale, Shortlet)
// @Param        category    formData string true  "Category"
// @Param        country     formData string true  "Country"
// @Param        state       formData string true  "State"
// @Param        city        formData string true  "City"
// @Param        address     formData string true  "Address"
// @Param        features    formData string true  "JSON array of features"
// @Param        images      formData file   true  "Images"
// @Param        videos      formData file   false "Videos"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /admin/properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.propertyUseCase.CreateProperty(c.Request.Context(), userID, usecase.CreateInput{
		Form:   readForm(c),
		Images: formFiles(c, "images"),
		Videos: formFiles(c, "videos"),
	})
	if err != nil {
		var validationErr *entity.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Message})
		case errors.Is(err, entity.ErrAllUploadsFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "All image uploads failed. Try again with smaller files."})
		default:
			h.logger.Error("Failed to create property: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload property"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Property uploaded successfully with %d/%d images!", result.Uploaded, result.Received),
		"property": result.Property,
	})
}

// UpdateProperty godoc
// @Summary      Update a property
// @Description  A JSON body patches the given fields. A multipart body replaces every field, keeps existingImages and appends newImages and newVideos.
// @Tags         admin-properties
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /admin/properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	id := c.Param("id")

	var (
		property *entity.Property
		err      error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		property, err = h.propertyUseCase.ReplaceProperty(c.Request.Context(), id, usecase.ReplaceInput{
			Form:           readForm(c),
			Visible:        c.PostForm("visible") == "true",
			ExistingImages: c.PostForm("existingImages"),
			NewImages:      formFiles(c, "newImages"),
			NewVideos:      formFiles(c, "newVideos"),
		})
	} else {
		var patch entity.PropertyPatch
		if bindErr := c.ShouldBindJSON(&patch); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}
		property, err = h.propertyUseCase.PatchProperty(c.Request.Context(), id, patch)
	}

	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Property not found"})
			return
		}
		h.logger.Error("Failed to update property %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "property": property})
}

// SetVisibility godoc
// @Summary      Show or hide a property
// @Tags         admin-properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        request body object true "{\"visible\": true}"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/properties/{id} [patch]
func (h *PropertyHandler) SetVisibility(c *gin.Context) {
	id := c.Param("id")

	var body map[string]interface{}
	_ = json.NewDecoder(c.Request.Body).Decode(&body)
	visible, ok := body["visible"].(bool)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing 'visible' field"})
		return
	}

	property, err := h.propertyUseCase.SetVisibility(c.Request.Context(), id, visible)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
			return
		}
		h.logger.Error("Failed to set visibility for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update visibility"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Property visibility set to %t", visible),
		"property": property,
	})
}

// DeleteProperty godoc
// @Summary      Delete a property
// @Tags         admin-properties
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	id := c.Param("id")

	if err := h.propertyUseCase.DeleteProperty(c.Request.Context(), id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
			return
		}
		h.logger.Error("Failed to delete property %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Property deleted"})
}

func readForm(c *gin.Context) usecase.PropertyForm {
	return usecase.PropertyForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Type:        c.PostForm("type"),
		Bedrooms:    c.PostForm("bedrooms"),
		Bathrooms:   c.PostForm("bathrooms"),
		Toilets:     c.PostForm("toilets"),
		Area:        c.PostForm("area"),
		Country:     c.PostForm("country"),
		State:       c.PostForm("state"),
		City:        c.PostForm("city"),
		Address:     c.PostForm("address"),
		Category:    c.PostForm("category"),
		Features:    c.PostForm("features"),
	}
}

func formFiles(c *gin.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}
