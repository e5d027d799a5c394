package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
	"github.com/riteshsinghh-coder/maxbytelms/internal/repository"
)

// ErrCourseNotFound indicates the requested course does not exist.
var ErrCourseNotFound = errors.New("course not found")

const courseListCacheKey = "courses:all"

// CourseService manages the course catalog the composer selects from.
type CourseService interface {
	Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id string) (dto.CourseResponse, error)
}

type courseService struct {
	repo      repository.CourseRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

func NewCourseService(repo repository.CourseRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validate:  validator.New(),
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "course_service").Logger(),
		now:       time.Now,
	}
}

func (s *courseService) Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	now := s.now().UTC()
	course := models.Course{
		Subjects:   strings.TrimSpace(s.sanitizer.Sanitize(payload.Subjects)),
		Duration:   strings.TrimSpace(s.sanitizer.Sanitize(payload.Duration)),
		CourseFees: payload.CourseFees,
		Type:       payload.Type,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Str("course_id", course.ID.Hex()).Str("subjects", course.Subjects).Msg("course created")
	return dto.NewCourseResponse(course), nil
}

// List serves the catalog from redis when possible and repopulates the cache
// on a miss. Cache failures degrade to the store, never to an error.
func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, courseListCacheKey).Result()
		if err == nil {
			var courses []dto.CourseResponse
			unmarshalErr := json.Unmarshal([]byte(cached), &courses)
			if unmarshalErr == nil {
				return courses, nil
			}
			s.logger.Warn().Err(unmarshalErr).Msg("discarding corrupt course cache entry")
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("course cache read failed")
		}
	}

	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	courses := dto.NewCourseResponseSlice(stored)

	if s.cache != nil {
		if encoded, err := json.Marshal(courses); err == nil {
			if err := s.cache.Set(ctx, courseListCacheKey, encoded, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("course cache write failed")
			}
		}
	}
	return courses, nil
}

func (s *courseService) Get(ctx context.Context, id string) (dto.CourseResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return dto.CourseResponse{}, ErrCourseNotFound
	}

	course, err := s.repo.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, courseListCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("course cache invalidation failed")
	}
}
