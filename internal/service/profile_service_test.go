package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository/docstore"
	"fittrack/fitness-tracker/internal/store/memory"
)

// fakeFileStorage records presign calls without touching S3.
type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/upload/%s?type=%s", objectKey, contentType), nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func newProfileServiceForTest() ProfileService {
	return NewProfileService(docstore.NewProfileRepository(memory.New()), &fakeFileStorage{})
}

func TestProfileGetBeforeFirstSave(t *testing.T) {
	svc := newProfileServiceForTest()

	profile, err := svc.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestProfileUpdateAndGet(t *testing.T) {
	svc := newProfileServiceForTest()
	ctx := context.Background()

	err := svc.UpdateProfile(ctx, "u1", &domain.Profile{
		Name: "Alex", Age: 30, Gender: "Male",
		Height: 180, Weight: 80,
		ActivityLevel: domain.ActivityModerate, Units: "metric",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Alex", profile.Name)
	assert.Equal(t, 180.0, profile.Height)
}

func TestProfileUpdateValidation(t *testing.T) {
	svc := newProfileServiceForTest()
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateProfile(ctx, "u1", nil), ErrProfileValidation)
	assert.ErrorIs(t, svc.UpdateProfile(ctx, "u1", &domain.Profile{}), ErrProfileValidation)
	assert.ErrorIs(t, svc.UpdateProfile(ctx, "u1", &domain.Profile{Name: "Alex", Age: -1}), ErrProfileValidation)
	assert.ErrorIs(t, svc.UpdateProfile(ctx, "u1", &domain.Profile{Name: "Alex", Weight: -5}), ErrProfileValidation)
}

func TestAvatarUploadURLUsesPerUserKey(t *testing.T) {
	svc := newProfileServiceForTest()

	upload, err := svc.AvatarUploadURL(context.Background(), "u1", "image/png")
	require.NoError(t, err)
	assert.Contains(t, upload.UploadURL, "avatars/u1")
	assert.Contains(t, upload.DownloadURL, "avatars/u1")

	_, err = svc.AvatarUploadURL(context.Background(), "", "image/png")
	assert.Error(t, err)
}
