package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/config"
	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
	"github.com/riteshsinghh-coder/maxbytelms/internal/repository"
)

// ErrInvalidCredentials indicates the uid or password did not match.
var ErrInvalidCredentials = errors.New("invalid uid or password")

// AuthService authenticates admins and students and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	students repository.StudentRepository
	cfg      config.Config
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(students repository.StudentRepository, cfg config.Config, logger zerolog.Logger) AuthService {
	return &authService{
		students: students,
		cfg:      cfg,
		logger:   logger.With().Str("component", "auth_service").Logger(),
		now:      time.Now,
	}
}

// Login checks the configured admin account first, then the student registry.
// UIDs are matched case-insensitively.
func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	uid := strings.ToUpper(strings.TrimSpace(payload.UID))

	if s.cfg.AdminUID != "" && uid == strings.ToUpper(s.cfg.AdminUID) {
		if subtle.ConstantTimeCompare([]byte(payload.Password), []byte(s.cfg.AdminPassword)) != 1 {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		token, err := s.issueToken(uid, s.cfg.AdminName, models.RoleAdmin)
		if err != nil {
			return dto.LoginResponse{}, err
		}
		s.logger.Info().Str("uid", uid).Str("role", models.RoleAdmin).Msg("login succeeded")
		return dto.LoginResponse{
			Token: token,
			UID:   uid,
			Name:  s.cfg.AdminName,
			Role:  models.RoleAdmin,
		}, nil
	}

	student, err := s.students.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}
	if subtle.ConstantTimeCompare([]byte(payload.Password), []byte(student.Password)) != 1 {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(student.UID, student.Name, models.RoleStudent)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	s.logger.Info().Str("uid", student.UID).Str("role", models.RoleStudent).Msg("login succeeded")
	return dto.LoginResponse{
		Token:          token,
		UID:            student.UID,
		Name:           student.Name,
		Role:           models.RoleStudent,
		Group:          student.Group,
		Subjects:       student.Subjects,
		ProfilePicture: student.ProfilePicture,
	}, nil
}

func (s *authService) issueToken(uid, name, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  uid,
		"name": name,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
