package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/chefcourse/backend/internal/mocks"
	"github.com/pageza/chefcourse/backend/internal/service"
	"github.com/pageza/chefcourse/backend/internal/testhelpers"
	"github.com/pageza/chefcourse/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPresignUpload(t *testing.T) {
	presigner := new(mocks.MockPresigner)
	svc := service.NewImageService(presigner, testhelpers.DiscardLogger())
	userID := uuid.New()

	keyPrefix := "recipes/" + userID.String() + "/"
	presigner.On("PresignPutURL", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, keyPrefix) && strings.HasSuffix(key, ".png")
	}), "image/png", service.UploadURLExpiry).Return("https://bucket.example/upload?sig=1", nil)
	presigner.On("PublicURL", mock.Anything).Return("https://bucket.example/object")

	resp, err := svc.PresignUpload(context.Background(), userID, &types.PresignUploadRequest{
		Kind:        "Recipe",
		ContentType: "image/PNG",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/upload?sig=1", resp.UploadURL)
	assert.Equal(t, "https://bucket.example/object", resp.PublicURL)
	assert.True(t, strings.HasPrefix(resp.Key, keyPrefix))
	assert.False(t, resp.ExpiresAt.IsZero())
	presigner.AssertExpectations(t)
}

func TestPresignUploadValidation(t *testing.T) {
	presigner := new(mocks.MockPresigner)
	svc := service.NewImageService(presigner, testhelpers.DiscardLogger())

	_, err := svc.PresignUpload(context.Background(), uuid.New(), &types.PresignUploadRequest{
		Kind:        "avatar",
		ContentType: "application/pdf",
	})
	serr := requireKind(t, err, service.KindValidation)
	assert.Len(t, serr.Details, 2)
	presigner.AssertNotCalled(t, "PresignPutURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPresignUploadWithoutStorage(t *testing.T) {
	svc := service.NewImageService(nil, testhelpers.DiscardLogger())

	_, err := svc.PresignUpload(context.Background(), uuid.New(), &types.PresignUploadRequest{
		Kind:        "chef",
		ContentType: "image/jpeg",
	})
	assert.ErrorIs(t, err, service.ErrUnavailable)
}

func TestPresignUploadStorageError(t *testing.T) {
	presigner := new(mocks.MockPresigner)
	presigner.On("PresignPutURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("credentials expired"))
	svc := service.NewImageService(presigner, testhelpers.DiscardLogger())

	_, err := svc.PresignUpload(context.Background(), uuid.New(), &types.PresignUploadRequest{
		Kind:        "course",
		ContentType: "image/webp",
	})
	require.Error(t, err)
	var serr *service.Error
	assert.False(t, errors.As(err, &serr))
}
