package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
	"github.com/nextgen-organics/portal-api/internal/ports"
)

// allowedImageTypes maps accepted upload content types to file extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadServiceOptions groups dependencies for UploadService.
type UploadServiceOptions struct {
	Store  ports.ObjectStore
	Logger *slog.Logger
}

// UploadService stores product and banner images in the object store under
// per-kind prefixes with random names.
type UploadService struct {
	store  ports.ObjectStore
	logger *slog.Logger
}

// NewUploadService constructs a new UploadService.
func NewUploadService(opts UploadServiceOptions) (*UploadService, error) {
	if opts.Store == nil {
		return nil, errors.New("ObjectStore is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{
		store:  opts.Store,
		logger: logger.With("component", "upload_service"),
	}, nil
}

// UploadImageInput groups parameters for UploadImage.
type UploadImageInput struct {
	// Kind partitions the key space: "products", "banners", "categories".
	Kind        string
	ContentType string
	Body        io.Reader
}

// UploadImage stores an image and returns its public URL.
func (s *UploadService) UploadImage(ctx context.Context, in UploadImageInput) (string, error) {
	kind := strings.Trim(in.Kind, "/")
	switch kind {
	case "products", "banners", "categories":
	default:
		return "", apperrors.Validation(fmt.Sprintf("unsupported upload kind %q", in.Kind))
	}

	ext, ok := allowedImageTypes[in.ContentType]
	if !ok {
		return "", apperrors.Validation(fmt.Sprintf("unsupported content type %q", in.ContentType))
	}
	if in.Body == nil {
		return "", apperrors.Validation("upload body is required")
	}

	key := path.Join(kind, uuid.NewString()+ext)
	url, err := s.store.Put(ctx, ports.PutObjectInput{
		Key:         key,
		ContentType: in.ContentType,
		Body:        in.Body,
	})
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	s.logger.InfoContext(ctx, "image uploaded", "key", key)
	return url, nil
}

// DeleteImage removes an object by key.
func (s *UploadService) DeleteImage(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}
