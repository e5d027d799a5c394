package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
	"github.com/riteshsinghh-coder/maxbytelms/internal/repository"
)

// ErrStudentNotFound indicates no student is registered under the given uid.
var ErrStudentNotFound = errors.New("student not found")

// StudentService manages student enrollment records.
type StudentService interface {
	Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	List(ctx context.Context) ([]dto.StudentResponse, error)
	GetByUID(ctx context.Context, uid string) (dto.StudentResponse, error)
	UpdateProfile(ctx context.Context, uid string, payload dto.ProfileUpdateRequest) (dto.StudentResponse, error)
	SetProfilePicture(ctx context.Context, uid, imageURL string) error
}

type studentService struct {
	repo      repository.StudentRepository
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	activity  ActivityPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewStudentService(repo repository.StudentRepository, activity ActivityPublisher, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validate:  validator.New(),
		sanitizer: bluemonday.StrictPolicy(),
		activity:  activity,
		logger:    logger.With().Str("component", "student_service").Logger(),
		now:       time.Now,
	}
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	subjects := make([]string, 0, len(payload.Subjects))
	for _, subject := range payload.Subjects {
		if trimmed := strings.TrimSpace(subject); trimmed != "" {
			subjects = append(subjects, trimmed)
		}
	}

	now := s.now().UTC()
	student := models.Student{
		Name:                strings.TrimSpace(s.sanitizer.Sanitize(payload.Name)),
		UID:                 strings.ToUpper(strings.TrimSpace(payload.UID)),
		Password:            payload.Password,
		Group:               strings.TrimSpace(payload.Group),
		Subjects:            subjects,
		Phone:               strings.TrimSpace(payload.Phone),
		Address:             strings.TrimSpace(s.sanitizer.Sanitize(payload.Address)),
		RegistrationFeePaid: payload.FeePaid(),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Insert(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Str("uid", student.UID).Str("group", student.Group).Msg("student registered")

	if s.activity != nil {
		s.activity.Publish(ctx, "student.registered", map[string]interface{}{
			"uid":   student.UID,
			"group": student.Group,
		})
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) GetByUID(ctx context.Context, uid string) (dto.StudentResponse, error) {
	student, err := s.repo.GetByUID(ctx, strings.ToUpper(strings.TrimSpace(uid)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

// UpdateProfile applies a partial update. Empty fields in the payload leave
// the stored values untouched.
func (s *studentService) UpdateProfile(ctx context.Context, uid string, payload dto.ProfileUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	uid = strings.ToUpper(strings.TrimSpace(uid))
	patch := repository.ProfilePatch{}
	if payload.Password != "" {
		password := payload.Password
		patch.Password = &password
	}

	if err := s.repo.UpdateProfile(ctx, uid, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return s.GetByUID(ctx, uid)
}

// SetProfilePicture records the uploaded image location for the student.
func (s *studentService) SetProfilePicture(ctx context.Context, uid, imageURL string) error {
	patch := repository.ProfilePatch{ProfilePicture: &imageURL}
	if err := s.repo.UpdateProfile(ctx, strings.ToUpper(strings.TrimSpace(uid)), patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}
