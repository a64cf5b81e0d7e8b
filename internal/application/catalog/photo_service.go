package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/infrastructure/logger"
	"github.com/shopcart/backend/internal/infrastructure/telemetry"
)

// PhotoStorage stores product photos in an object store
type PhotoStorage interface {
	// Upload stores body under key and returns its public URL
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// DeleteByURL removes the object behind a URL returned by Upload.
	// URLs that do not point into the store are ignored.
	DeleteByURL(ctx context.Context, url string) error
}

// PhotoUpload is one uploaded file
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PhotoPolicy limits what may be uploaded
type PhotoPolicy struct {
	MaxSize      int64
	AllowedTypes []string
}

var extensionByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// PhotoService attaches photos to products
type PhotoService struct {
	productRepo catalog.ProductRepository
	storage     PhotoStorage
	policy      PhotoPolicy
	now         func() time.Time
}

// NewPhotoService creates a new PhotoService
func NewPhotoService(productRepo catalog.ProductRepository, storage PhotoStorage, policy PhotoPolicy) *PhotoService {
	return &PhotoService{
		productRepo: productRepo,
		storage:     storage,
		policy:      policy,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Upload stores the photo and makes it the product's photo. The previous
// photo object, if any, is removed afterwards.
func (s *PhotoService) Upload(ctx context.Context, productID uuid.UUID, upload PhotoUpload) (*PhotoResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "photo", "upload",
		"product_id", productID.String(), "content_type", upload.ContentType, "size", upload.Size)
	defer span.End()

	ext, err := s.validate(upload)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), ext)
	url, err := s.storage.Upload(ctx, key, upload.ContentType, upload.Body, upload.Size)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.ErrUpstreamFailure.WithMessage("failed to store photo").Wrap(err)
	}

	previous := product.PhotoURL
	product.SetPhoto(url, s.now())
	if err := s.productRepo.Update(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		s.discard(ctx, url)
		return nil, err
	}
	if previous != "" && previous != url {
		s.discard(ctx, previous)
	}

	logger.L(ctx).Info("Product photo updated",
		zap.String("product_id", productID.String()), zap.String("key", key))
	return &PhotoResponse{ProductID: productID, URL: url}, nil
}

// Delete removes the product photo. A product without a photo is left as is.
func (s *PhotoService) Delete(ctx context.Context, productID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "photo", "delete", "product_id", productID.String())
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if product.PhotoURL == "" {
		return nil
	}

	if err := s.storage.DeleteByURL(ctx, product.PhotoURL); err != nil {
		telemetry.RecordError(span, err)
		return shared.ErrUpstreamFailure.WithMessage("failed to delete photo").Wrap(err)
	}
	product.SetPhoto("", s.now())
	return s.productRepo.Update(ctx, product)
}

func (s *PhotoService) validate(upload PhotoUpload) (string, error) {
	if upload.Body == nil || upload.Size <= 0 {
		return "", shared.ErrInvalidInput.WithMessage("photo is empty")
	}
	if s.policy.MaxSize > 0 && upload.Size > s.policy.MaxSize {
		return "", shared.ErrInvalidInput.WithMessage(
			fmt.Sprintf("photo exceeds the maximum size of %d bytes", s.policy.MaxSize))
	}

	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if len(s.policy.AllowedTypes) > 0 && !slices.Contains(s.policy.AllowedTypes, contentType) {
		return "", shared.ErrInvalidInput.WithMessage(fmt.Sprintf("photo type %q is not allowed", contentType))
	}

	if ext, ok := extensionByType[contentType]; ok {
		return ext, nil
	}
	return strings.ToLower(path.Ext(upload.Filename)), nil
}

func (s *PhotoService) discard(ctx context.Context, url string) {
	if err := s.storage.DeleteByURL(context.WithoutCancel(ctx), url); err != nil {
		logger.L(ctx).Warn("Failed to delete photo object", zap.String("url", url), zap.Error(err))
	}
}
