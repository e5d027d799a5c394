package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
	"github.com/riteshsinghh-coder/maxbytelms/internal/repository"
)

// DashboardService assembles the per-student home view.
type DashboardService interface {
	ForStudent(ctx context.Context, uid string) (dto.DashboardResponse, error)
	Invalidate(ctx context.Context, uid string)
}

type dashboardService struct {
	students repository.StudentRepository
	courses  repository.CourseRepository
	lectures repository.LectureRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

func NewDashboardService(students repository.StudentRepository, courses repository.CourseRepository, lectures repository.LectureRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		students: students,
		courses:  courses,
		lectures: lectures,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func dashboardCacheKey(uid string) string {
	return "dashboard:student:" + uid
}

// ForStudent returns the dashboard for the given uid, serving from cache when
// a fresh entry exists.
func (s *dashboardService) ForStudent(ctx context.Context, uid string) (dto.DashboardResponse, error) {
	uid = strings.ToUpper(strings.TrimSpace(uid))

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, dashboardCacheKey(uid)).Result()
		if err == nil {
			var dashboard dto.DashboardResponse
			if err := json.Unmarshal([]byte(cached), &dashboard); err == nil {
				return dashboard, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("dashboard cache read failed")
		}
	}

	student, err := s.students.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.DashboardResponse{}, ErrStudentNotFound
		}
		return dto.DashboardResponse{}, err
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	lectures, err := s.lectures.ListForStudent(ctx, student.Group, student.Subjects)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	dashboard := s.assemble(student, courses, lectures)

	if s.cache != nil {
		if encoded, err := json.Marshal(dashboard); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey(uid), encoded, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}
	return dashboard, nil
}

// Invalidate drops the cached dashboard so the next read rebuilds it. Called
// after profile changes.
func (s *dashboardService) Invalidate(ctx context.Context, uid string) {
	if s.cache == nil {
		return
	}
	uid = strings.ToUpper(strings.TrimSpace(uid))
	if err := s.cache.Del(ctx, dashboardCacheKey(uid)).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}

func (s *dashboardService) assemble(student models.Student, courses []models.Course, lectures []models.Lecture) dto.DashboardResponse {
	subjects := make(map[string]struct{}, len(student.Subjects))
	for _, subject := range student.Subjects {
		subjects[strings.ToLower(strings.TrimSpace(subject))] = struct{}{}
	}

	matched := make([]dto.CourseResponse, 0)
	for _, course := range courses {
		if _, ok := subjects[strings.ToLower(strings.TrimSpace(course.Subjects))]; ok {
			matched = append(matched, dto.NewCourseResponse(course))
		}
	}

	bySubject := make(map[string][]dto.LectureResponse)
	groupLectures := make([]dto.LectureResponse, 0)
	total := 0
	for _, lecture := range lectures {
		response := dto.NewLectureResponse(lecture)
		switch lecture.TargetType {
		case models.TargetTypeGroup:
			groupLectures = append(groupLectures, response)
			total++
		case models.TargetTypeSubject:
			for _, target := range lecture.TargetValue {
				if _, ok := subjects[strings.ToLower(strings.TrimSpace(target))]; ok {
					bySubject[target] = append(bySubject[target], response)
					total++
				}
			}
		}
	}

	return dto.DashboardResponse{
		Student:            dto.NewStudentResponse(student),
		MatchedCourses:     matched,
		LecturesBySubject:  bySubject,
		GroupLectures:      groupLectures,
		TotalMatchedVideos: total,
	}
}
