package service

import (
	"context"
	"errors"
	"fmt"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/storage"
)

var (
	ErrProfileValidation = errors.New("profile validation failed")
)

// AvatarUpload is a one-shot pair of presigned URLs for a profile image:
// the client PUTs the image to UploadURL and stores DownloadURL in the
// profile's ProfileImage field on the next profile save.
type AvatarUpload struct {
	UploadURL   string `json:"uploadUrl"`
	DownloadURL string `json:"downloadUrl"`
}

// ProfileService manages the per-user profile document and its avatar image.
type ProfileService interface {
	// GetProfile resolves nil when the user has not saved a profile yet.
	GetProfile(ctx context.Context, uid string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, uid string, profile *domain.Profile) error
	AvatarUploadURL(ctx context.Context, uid, contentType string) (*AvatarUpload, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	fileStorage storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		fileStorage: fileStorage,
	}
}

func (s *profileService) GetProfile(ctx context.Context, uid string) (*domain.Profile, error) {
	return s.profileRepo.Get(ctx, uid)
}

func (s *profileService) UpdateProfile(ctx context.Context, uid string, profile *domain.Profile) error {
	if profile == nil || profile.Name == "" {
		return ErrProfileValidation
	}
	if profile.Age < 0 || profile.Height < 0 || profile.Weight < 0 {
		return ErrProfileValidation
	}
	return s.profileRepo.Update(ctx, uid, profile)
}

// AvatarUploadURL generates presigned URLs for the user's profile image.
// One object key per user, so re-uploading replaces the previous image.
func (s *profileService) AvatarUploadURL(ctx context.Context, uid, contentType string) (*AvatarUpload, error) {
	if uid == "" {
		return nil, repository.ErrUnauthenticated
	}
	objectKey := fmt.Sprintf("avatars/%s", uid)

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, 0)
	if err != nil {
		return nil, err
	}
	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, 0)
	if err != nil {
		return nil, err
	}
	return &AvatarUpload{UploadURL: uploadURL, DownloadURL: downloadURL}, nil
}
