package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
	"github.com/riteshsinghh-coder/maxbytelms/internal/repository"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
)

type memoryCourseRepo struct {
	courses   []models.Course
	listCalls int
}

func (m *memoryCourseRepo) Insert(_ context.Context, course *models.Course) error {
	course.ID = primitive.NewObjectID()
	m.courses = append(m.courses, *course)
	return nil
}

func (m *memoryCourseRepo) List(_ context.Context) ([]models.Course, error) {
	m.listCalls++
	out := make([]models.Course, len(m.courses))
	copy(out, m.courses)
	return out, nil
}

func (m *memoryCourseRepo) GetByID(_ context.Context, id primitive.ObjectID) (models.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Course{}, repository.ErrNotFound
}

func newTestCourseService(t *testing.T, repo *memoryCourseRepo) service.CourseService {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return service.NewCourseService(repo, client, time.Minute, zerolog.New(io.Discard))
}

func TestCourseCreateValidatesPayload(t *testing.T) {
	svc := newTestCourseService(t, &memoryCourseRepo{})

	_, err := svc.Create(context.Background(), dto.CourseCreateRequest{})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), dto.CourseCreateRequest{
		Subjects:   "Physics",
		Duration:   "6 months",
		CourseFees: 12000,
		Type:       "weekend",
	})
	require.Error(t, err)
}

func TestCourseListServesFromCache(t *testing.T) {
	repo := &memoryCourseRepo{}
	svc := newTestCourseService(t, repo)

	_, err := svc.Create(context.Background(), dto.CourseCreateRequest{
		Subjects:   "Physics",
		Duration:   "6 months",
		CourseFees: 12000,
		Type:       "regular",
	})
	require.NoError(t, err)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, 1, repo.listCalls)

	second, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, repo.listCalls)
}

func TestCourseCreateInvalidatesCache(t *testing.T) {
	repo := &memoryCourseRepo{}
	svc := newTestCourseService(t, repo)

	_, err := svc.Create(context.Background(), dto.CourseCreateRequest{
		Subjects: "Physics", Duration: "6 months", CourseFees: 12000, Type: "regular",
	})
	require.NoError(t, err)

	courses, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)

	_, err = svc.Create(context.Background(), dto.CourseCreateRequest{
		Subjects: "Chemistry", Duration: "3 months", CourseFees: 8000, Type: "scholarship",
	})
	require.NoError(t, err)

	courses, err = svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, 2, repo.listCalls)
}

func TestCourseGetUnknownID(t *testing.T) {
	svc := newTestCourseService(t, &memoryCourseRepo{})

	_, err := svc.Get(context.Background(), "garbage")
	require.ErrorIs(t, err, service.ErrCourseNotFound)

	_, err = svc.Get(context.Background(), primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, service.ErrCourseNotFound)
}
