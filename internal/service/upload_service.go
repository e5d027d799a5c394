package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/observability"
	"github.com/riteshsinghh-coder/maxbytelms/pkg/storage"
)

// ErrFileTooLarge indicates the upload exceeds the configured size cap.
var ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")

// ErrUnsupportedImage indicates the upload is not one of the accepted image
// formats. Detection is by content, not file extension.
var ErrUnsupportedImage = errors.New("unsupported image format")

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// UploadService stores profile images and records them on the student.
type UploadService interface {
	StoreProfileImage(ctx context.Context, uid string, file *multipart.FileHeader) (string, error)
}

type uploadService struct {
	store     storage.FileStorage
	students  StudentService
	dashboard DashboardService
	maxBytes  int64
	logger    zerolog.Logger
}

func NewUploadService(store storage.FileStorage, students StudentService, dashboard DashboardService, maxBytes int64, logger zerolog.Logger) UploadService {
	return &uploadService{
		store:     store,
		students:  students,
		dashboard: dashboard,
		maxBytes:  maxBytes,
		logger:    logger.With().Str("component", "upload_service").Logger(),
	}
}

func (s *uploadService) StoreProfileImage(ctx context.Context, uid string, file *multipart.FileHeader) (string, error) {
	started := time.Now()

	if file.Size > s.maxBytes {
		observability.UploadRejected().WithLabelValues("too_large").Inc()
		return "", ErrFileTooLarge
	}

	source, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer source.Close()

	data, err := io.ReadAll(io.LimitReader(source, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		observability.UploadRejected().WithLabelValues("too_large").Inc()
		return "", ErrFileTooLarge
	}

	detected := mimetype.Detect(data)
	if !isAllowedImage(detected) {
		observability.UploadRejected().WithLabelValues("bad_type").Inc()
		s.logger.Warn().Str("uid", uid).Str("mime", detected.String()).Msg("rejected non-image upload")
		return "", ErrUnsupportedImage
	}

	imageURL, err := s.store.Save(ctx, detected.Extension(), data)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	if err := s.students.SetProfilePicture(ctx, uid, imageURL); err != nil {
		return "", err
	}
	s.dashboard.Invalidate(ctx, uid)

	observability.UploadLatency().Observe(time.Since(started).Seconds())
	s.logger.Info().Str("uid", uid).Str("image_url", imageURL).Msg("profile image stored")
	return imageURL, nil
}

func isAllowedImage(detected *mimetype.MIME) bool {
	for _, allowed := range allowedImageTypes {
		if detected.Is(allowed) {
			return true
		}
	}
	return false
}
