package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
	"github.com/riteshsinghh-coder/maxbytelms/internal/repository"
)

// LectureService manages recorded lecture publishing and targeting.
type LectureService interface {
	Create(ctx context.Context, payload dto.LectureCreateRequest, createdBy string) (dto.LectureResponse, error)
	List(ctx context.Context) ([]dto.LectureResponse, error)
}

type lectureService struct {
	repo     repository.LectureRepository
	validate *validator.Validate
	strict   *bluemonday.Policy
	ugc      *bluemonday.Policy
	activity ActivityPublisher
	logger   zerolog.Logger
	now      func() time.Time
}

func NewLectureService(repo repository.LectureRepository, activity ActivityPublisher, logger zerolog.Logger) LectureService {
	return &lectureService{
		repo:     repo,
		validate: validator.New(),
		strict:   bluemonday.StrictPolicy(),
		ugc:      bluemonday.UGCPolicy(),
		activity: activity,
		logger:   logger.With().Str("component", "lecture_service").Logger(),
		now:      time.Now,
	}
}

func (s *lectureService) Create(ctx context.Context, payload dto.LectureCreateRequest, createdBy string) (dto.LectureResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.LectureResponse{}, err
	}

	targets := make([]string, 0, len(payload.TargetValue))
	for _, target := range payload.TargetValue {
		if trimmed := strings.TrimSpace(target); trimmed != "" {
			targets = append(targets, trimmed)
		}
	}

	lecture := models.Lecture{
		VideoName:   strings.TrimSpace(s.strict.Sanitize(payload.VideoName)),
		VideoURL:    strings.TrimSpace(payload.VideoURL),
		Description: strings.TrimSpace(s.ugc.Sanitize(payload.Description)),
		TargetType:  payload.TargetType,
		TargetValue: targets,
		CreatedBy:   createdBy,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, &lecture); err != nil {
		return dto.LectureResponse{}, err
	}

	s.logger.Info().
		Str("lecture_id", lecture.ID.Hex()).
		Str("target_type", lecture.TargetType).
		Msg("lecture published")

	if s.activity != nil {
		s.activity.Publish(ctx, "lecture.published", map[string]interface{}{
			"lecture_id":  lecture.ID.Hex(),
			"target_type": lecture.TargetType,
			"created_by":  createdBy,
		})
	}
	return dto.NewLectureResponse(lecture), nil
}

func (s *lectureService) List(ctx context.Context) ([]dto.LectureResponse, error) {
	lectures, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewLectureResponseSlice(lectures), nil
}
