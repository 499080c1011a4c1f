package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

const (
	MaxImageSize   = 5 * 1024 * 1024 // 5MB
	MinImageWidth  = 50
	MinImageHeight = 50
	PhotoSize      = 400
	JPEGQuality    = 85
)

var (
	ErrImageTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidFormat             = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrImageTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidImageData          = errors.New("invalid image data")
	ErrImageStorageNotConfigured = errors.New("image storage not configured")
)

// allowedExtensions are the upload file extensions the decoders registered above can read
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// PhotoService resizes profile photos, uploads them and records the URL on the member
type PhotoService struct {
	uploads domain.UploadRepository
	members *MemberService
}

// NewPhotoService creates a new PhotoService
func NewPhotoService(uploads domain.UploadRepository, members *MemberService) *PhotoService {
	return &PhotoService{uploads: uploads, members: members}
}

// IsEnabled indicates whether uploads are supported (storage configured).
func (s *PhotoService) IsEnabled() bool {
	return s != nil && s.uploads != nil
}

// validateAndDecode validates the image and returns the decoded image
func (s *PhotoService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, ErrInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinImageWidth || bounds.Dy() < MinImageHeight {
		return nil, ErrImageTooSmall
	}

	return img, nil
}

// UploadPhoto crops the image to a square, uploads it and sets the member's photoUrl
func (s *PhotoService) UploadPhoto(ctx context.Context, memberID uuid.UUID, data []byte, filename string) (*domain.User, error) {
	if !s.IsEnabled() {
		return nil, ErrImageStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	// the member must exist before anything is uploaded
	existing, err := s.members.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	processed := img
	if img.Bounds().Dx() > PhotoSize || img.Bounds().Dy() > PhotoSize {
		processed = imaging.Fill(img, PhotoSize, PhotoSize, imaging.Center, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	objectPath := PhotoObjectPath(memberID, uuid.New())
	url, err := s.uploads.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	// dates and flags are always taken from a patch, so start from the stored record
	patch := domain.PatchFromUser(*existing)
	patch.PhotoURL = &url
	return s.members.UpdateMember(ctx, memberID, patch)
}

// PhotoObjectPath returns the object key of one uploaded photo of a member
func PhotoObjectPath(memberID, photoID uuid.UUID) string {
	return fmt.Sprintf("profile-pictures/%s/%s.jpg", memberID, photoID)
}
