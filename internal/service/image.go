package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/chefcourse/backend/internal/types"
)

// UploadURLExpiry is how long a presigned upload URL stays valid.
const UploadURLExpiry = 15 * time.Minute

// ImagePresigner signs direct-to-bucket uploads. config.S3Config implements it.
type ImagePresigner interface {
	PresignPutURL(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	PublicURL(key string) string
}

// ImageService hands out presigned S3 upload URLs for recipe, chef and
// course images. The resulting public URL is what clients store in imageUrl,
// pictureUrl or coverImageUrl.
type ImageService struct {
	presigner ImagePresigner
	logger    *slog.Logger
	now       func() time.Time
}

var _ IImageService = (*ImageService)(nil)

// NewImageService creates a new ImageService. A nil presigner is allowed and
// makes every request fail with ErrUnavailable.
func NewImageService(presigner ImagePresigner, logger *slog.Logger) *ImageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageService{presigner: presigner, logger: logger, now: time.Now}
}

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// PresignUpload returns a URL the caller can PUT the image to.
func (s *ImageService) PresignUpload(ctx context.Context, userID uuid.UUID, req *types.PresignUploadRequest) (*types.PresignUploadResponse, error) {
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	req.ContentType = strings.ToLower(strings.TrimSpace(req.ContentType))
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if s.presigner == nil {
		return nil, ErrUnavailable
	}

	key := fmt.Sprintf("%ss/%s/%s.%s", req.Kind, userID, uuid.New(), imageExtensions[req.ContentType])
	uploadURL, err := s.presigner.PresignPutURL(ctx, key, req.ContentType, UploadURLExpiry)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to presign upload",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &types.PresignUploadResponse{
		UploadURL: uploadURL,
		PublicURL: s.presigner.PublicURL(key),
		Key:       key,
		ExpiresAt: s.now().UTC().Add(UploadURLExpiry),
	}, nil
}
