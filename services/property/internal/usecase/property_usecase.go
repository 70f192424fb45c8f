package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"sync"
	"time"

	"cusceda/pkg/logger"
	"cusceda/services/property/internal/entity"
	"cusceda/services/property/internal/repo/persistent"

	"golang.org/x/sync/errgroup"
)

const (
	relatedLimit       = 4
	imageUploadTimeout = 15 * time.Second
	uploadConcurrency  = 4
)

// MediaUploader stores an uploaded file and returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, folder, filename string, body io.ReadSeeker, contentType string) (string, error)
}

// DetailCache fronts property detail reads. Get reports a miss as (nil, nil).
type DetailCache interface {
	Get(ctx context.Context, id string) (*entity.Property, error)
	Set(ctx context.Context, property *entity.Property) error
	Invalidate(ctx context.Context, id string) error
}

// PropertyForm is the multipart listing form as submitted.
type PropertyForm struct {
	Title       string
	Description string
	Price       string
	Type        string
	Bedrooms    string
	Bathrooms   string
	Toilets     string
	Area        string
	Country     string
	State       string
	City        string
	Address     string
	Category    string
	Features    string // JSON array
}

type CreateInput struct {
	Form   PropertyForm
	Images []*multipart.FileHeader
	Videos []*multipart.FileHeader
}

type CreateResult struct {
	Property *entity.Property
	Uploaded int
	Received int
}

// ReplaceInput is the multipart edit form: every field is replaced,
// existing images listed in ExistingImages are kept and new media appended.
type ReplaceInput struct {
	Form           PropertyForm
	Visible        bool
	ExistingImages string // JSON array
	NewImages      []*multipart.FileHeader
	NewVideos      []*multipart.FileHeader
}

type PropertyUseCase interface {
	ListVisible(ctx context.Context) ([]entity.Property, error)
	Search(ctx context.Context, filter SearchFilter) (*SearchPage, error)
	GetProperty(ctx context.Context, id string) (*entity.Property, error)
	Related(ctx context.Context, id string) ([]entity.Property, error)
	ListAdmin(ctx context.Context, q entity.AdminQuery) ([]entity.Property, int64, error)
	CreateProperty(ctx context.Context, userID string, in CreateInput) (*CreateResult, error)
	PatchProperty(ctx context.Context, id string, patch entity.PropertyPatch) (*entity.Property, error)
	ReplaceProperty(ctx context.Context, id string, in ReplaceInput) (*entity.Property, error)
	SetVisibility(ctx context.Context, id string, visible bool) (*entity.Property, error)
	DeleteProperty(ctx context.Context, id string) error
}

type propertyUseCase struct {
	propertyRepo persistent.PropertyRepository
	media        MediaUploader
	cache        DetailCache
	logger       *logger.Logger
}

// NewPropertyUseCase accepts a nil cache.
func NewPropertyUseCase(propertyRepo persistent.PropertyRepository, media MediaUploader, cache DetailCache, logger *logger.Logger) PropertyUseCase {
	return &propertyUseCase{
		propertyRepo: propertyRepo,
		media:        media,
		cache:        cache,
		logger:       logger,
	}
}

func (uc *propertyUseCase) ListVisible(ctx context.Context) ([]entity.Property, error) {
	return uc.propertyRepo.ListVisible(ctx)
}

func (uc *propertyUseCase) Search(ctx context.Context, filter SearchFilter) (*SearchPage, error) {
	properties, err := uc.propertyRepo.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	page := ApplySearch(properties, filter)
	return &page, nil
}

func (uc *propertyUseCase) GetProperty(ctx context.Context, id string) (*entity.Property, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.logger.Warn("Property cache read failed for %s: %v", id, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, property); err != nil {
			uc.logger.Warn("Property cache write failed for %s: %v", id, err)
		}
	}
	return property, nil
}

func (uc *propertyUseCase) Related(ctx context.Context, id string) ([]entity.Property, error) {
	property, err := uc.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.propertyRepo.Related(ctx, property, relatedLimit)
}

func (uc *propertyUseCase) ListAdmin(ctx context.Context, q entity.AdminQuery) ([]entity.Property, int64, error) {
	return uc.propertyRepo.ListAdmin(ctx, q)
}

func (uc *propertyUseCase) CreateProperty(ctx context.Context, userID string, in CreateInput) (*CreateResult, error) {
	f := in.Form
	if blank(f.Title, f.Description, f.Price, f.Country, f.State, f.City, f.Address, f.Category) {
		return nil, entity.NewValidationError("Please fill in all required fields.")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		return nil, entity.NewValidationError("Price must be a number.")
	}

	features := parseStringList(f.Features)
	if len(features) == 0 {
		return nil, entity.NewValidationError("Please add at least one feature.")
	}
	if len(in.Images) == 0 {
		return nil, entity.NewValidationError("Please upload at least one image.")
	}

	imageURLs := uc.uploadImages(ctx, "properties/images", in.Images)
	if len(imageURLs) == 0 {
		return nil, entity.ErrAllUploadsFailed
	}

	videoURLs, err := uc.uploadAll(ctx, "properties/videos", in.Videos, "video/mp4")
	if err != nil {
		return nil, err
	}

	property := &entity.Property{
		UserID:      userID,
		Title:       f.Title,
		Description: f.Description,
		Price:       price,
		Type:        entity.ListingType(f.Type),
		Category:    f.Category,
		Bedrooms:    atoiOrZero(f.Bedrooms),
		Bathrooms:   atoiOrZero(f.Bathrooms),
		Toilets:     atoiOrZero(f.Toilets),
		Area:        floatOrZero(f.Area),
		Country:     f.Country,
		State:       f.State,
		City:        f.City,
		Address:     f.Address,
		Features:    features,
		Images:      imageURLs,
		Videos:      videoURLs,
		Visible:     true,
	}

	if err := uc.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	uc.logger.Info("Property %s created by %s with %d/%d images", property.ID, userID, len(imageURLs), len(in.Images))
	return &CreateResult{Property: property, Uploaded: len(imageURLs), Received: len(in.Images)}, nil
}

func (uc *propertyUseCase) PatchProperty(ctx context.Context, id string, patch entity.PropertyPatch) (*entity.Property, error) {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(property)
	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)
	return property, nil
}

func (uc *propertyUseCase) ReplaceProperty(ctx context.Context, id string, in ReplaceInput) (*entity.Property, error) {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newImages, err := uc.uploadAll(ctx, "properties/images", in.NewImages, "image/jpeg")
	if err != nil {
		return nil, err
	}
	newVideos, err := uc.uploadAll(ctx, "properties/videos", in.NewVideos, "video/mp4")
	if err != nil {
		return nil, err
	}

	f := in.Form
	property.Title = f.Title
	property.Description = f.Description
	property.Price = floatOrZero(f.Price)
	property.Type = entity.ListingType(f.Type)
	property.Category = f.Category
	property.Bedrooms = atoiOrZero(f.Bedrooms)
	property.Bathrooms = atoiOrZero(f.Bathrooms)
	property.Toilets = atoiOrZero(f.Toilets)
	property.Area = floatOrZero(f.Area)
	property.Country = f.Country
	property.State = f.State
	property.City = f.City
	property.Address = f.Address
	property.Visible = in.Visible
	property.Images = append(parseStringList(in.ExistingImages), newImages...)
	property.Videos = append(property.Videos, newVideos...)
	if features := parseStringList(f.Features); len(features) > 0 {
		property.Features = features
	}

	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)
	return property, nil
}

func (uc *propertyUseCase) SetVisibility(ctx context.Context, id string, visible bool) (*entity.Property, error) {
	property, err := uc.propertyRepo.SetVisible(ctx, id, visible)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	return property, nil
}

func (uc *propertyUseCase) DeleteProperty(ctx context.Context, id string) error {
	if err := uc.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *propertyUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		uc.logger.Warn("Property cache invalidation failed for %s: %v", id, err)
	}
}

// uploadImages uploads concurrently and keeps whatever succeeded, in input order.
func (uc *propertyUseCase) uploadImages(ctx context.Context, folder string, files []*multipart.FileHeader) []string {
	urls := make([]string, len(files))
	var mu sync.Mutex
	failed := 0

	var g errgroup.Group
	g.SetLimit(uploadConcurrency)
	for i, file := range files {
		g.Go(func() error {
			uploadCtx, cancel := context.WithTimeout(ctx, imageUploadTimeout)
			defer cancel()

			url, err := uc.uploadFile(uploadCtx, folder, file, "image/jpeg")
			if err != nil {
				uc.logger.Error("Image upload failed for %s: %v", file.Filename, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			urls[i] = url
			return nil
		})
	}
	_ = g.Wait()

	if failed > 0 {
		uc.logger.Warn("%d of %d image uploads failed", failed, len(files))
	}

	uploaded := make([]string, 0, len(files))
	for _, url := range urls {
		if url != "" {
			uploaded = append(uploaded, url)
		}
	}
	return uploaded
}

// uploadAll uploads concurrently and fails if any upload fails.
func (uc *propertyUseCase) uploadAll(ctx context.Context, folder string, files []*multipart.FileHeader, fallbackType string) ([]string, error) {
	urls := make([]string, len(files))
	if len(files) == 0 {
		return urls, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, file := range files {
		g.Go(func() error {
			url, err := uc.uploadFile(gctx, folder, file, fallbackType)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

func (uc *propertyUseCase) uploadFile(ctx context.Context, folder string, file *multipart.FileHeader, fallbackType string) (string, error) {
	if uc.media == nil {
		return "", errors.New("media storage is not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", file.Filename, err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = fallbackType
	}
	return uc.media.Upload(ctx, folder, file.Filename, src, contentType)
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// parseStringList decodes a JSON string array; anything else is empty.
func parseStringList(raw string) []string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	out := list[:0]
	for _, v := range list {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func floatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
