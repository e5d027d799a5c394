package service_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/riteshsinghh-coder/maxbytelms/internal/config"
	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
	"github.com/riteshsinghh-coder/maxbytelms/internal/repository"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
)

type memoryStudentRepo struct {
	students []models.Student
}

func (m *memoryStudentRepo) Insert(_ context.Context, student *models.Student) error {
	student.ID = primitive.NewObjectID()
	m.students = append(m.students, *student)
	return nil
}

func (m *memoryStudentRepo) List(_ context.Context) ([]models.Student, error) {
	out := make([]models.Student, len(m.students))
	copy(out, m.students)
	return out, nil
}

func (m *memoryStudentRepo) GetByUID(_ context.Context, uid string) (models.Student, error) {
	for _, s := range m.students {
		if strings.EqualFold(s.UID, uid) {
			return s, nil
		}
	}
	return models.Student{}, repository.ErrNotFound
}

func (m *memoryStudentRepo) UpdateProfile(_ context.Context, uid string, patch repository.ProfilePatch) error {
	for i, s := range m.students {
		if strings.EqualFold(s.UID, uid) {
			if patch.Password != nil {
				m.students[i].Password = *patch.Password
			}
			if patch.ProfilePicture != nil {
				m.students[i].ProfilePicture = *patch.ProfilePicture
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func authTestConfig() config.Config {
	return config.Config{
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		AdminUID:      "ADMIN01",
		AdminName:     "Site Admin",
		AdminPassword: "admin-pass",
	}
}

func TestLoginAdminAccount(t *testing.T) {
	cfg := authTestConfig()
	svc := service.NewAuthService(&memoryStudentRepo{}, cfg, zerolog.New(io.Discard))

	session, err := svc.Login(context.Background(), dto.LoginRequest{UID: "admin01", Password: "admin-pass"})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, session.Role)
	require.Equal(t, "ADMIN01", session.UID)

	token, err := jwt.Parse(session.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "ADMIN01", claims["sub"])
	require.Equal(t, models.RoleAdmin, claims["role"])
}

func TestLoginStudentCaseInsensitiveUID(t *testing.T) {
	repo := &memoryStudentRepo{students: []models.Student{{
		UID:      "MB2024001",
		Name:     "Priya",
		Password: "secret99",
		Group:    "batch-a",
		Subjects: []string{"Physics"},
	}}}
	svc := service.NewAuthService(repo, authTestConfig(), zerolog.New(io.Discard))

	session, err := svc.Login(context.Background(), dto.LoginRequest{UID: "mb2024001", Password: "secret99"})
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, session.Role)
	require.Equal(t, "MB2024001", session.UID)
	require.Equal(t, []string{"Physics"}, session.Subjects)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := &memoryStudentRepo{students: []models.Student{{UID: "MB2024001", Password: "secret99"}}}
	svc := service.NewAuthService(repo, authTestConfig(), zerolog.New(io.Discard))

	_, err := svc.Login(context.Background(), dto.LoginRequest{UID: "MB2024001", Password: "wrong"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{UID: "ADMIN01", Password: "wrong"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{UID: "UNKNOWN", Password: "whatever"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}
