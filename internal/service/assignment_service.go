package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riteshsinghh-coder/maxbytelms/internal/draft"
	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
	"github.com/riteshsinghh-coder/maxbytelms/internal/observability"
	"github.com/riteshsinghh-coder/maxbytelms/internal/repository"
)

// ErrAssignmentNotFound indicates the requested assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrMalformedCourseID indicates a selected course id is not a valid store
// identifier. This is a validation failure, never a silent drop.
var ErrMalformedCourseID = errors.New("malformed course id")

// ErrSubmissionInFlight indicates another submission holding the same
// idempotency key has not finished yet.
var ErrSubmissionInFlight = errors.New("submission with this idempotency key is still in flight")

// ValidationError wraps the first submission rule the payload breaks. Its
// message is surfaced verbatim to the author and is never logged as a fault.
type ValidationError struct {
	Violation *draft.Violation
}

func (e *ValidationError) Error() string {
	return e.Violation.Message()
}

// SubmitResult reports the outcome of an accepted submission.
type SubmitResult struct {
	AssignmentID string
	Replayed     bool
}

// AssignmentService validates and persists submitted assignment drafts.
type AssignmentService interface {
	Submit(ctx context.Context, payload dto.AssignmentSubmitRequest, createdBy, idempotencyKey string) (SubmitResult, error)
	List(ctx context.Context) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, id string) (dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo      repository.AssignmentRepository
	cache     *redis.Client
	idemTTL   time.Duration
	activity  ActivityPublisher
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAssignmentService builds the ingestion service. The redis client is
// optional; without it submissions simply have no idempotency ledger.
func NewAssignmentService(repo repository.AssignmentRepository, cache *redis.Client, idemTTL time.Duration, activity ActivityPublisher, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		repo:      repo,
		cache:     cache,
		idemTTL:   idemTTL,
		activity:  activity,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "assignment_service").Logger(),
		tracer:    otel.Tracer("github.com/riteshsinghh-coder/maxbytelms/internal/service/assignment"),
		now:       time.Now,
	}
}

const idempotencyPending = "pending"

func idempotencyCacheKey(key string) string {
	return "assignment:idem:" + key
}

// Submit runs the shared submission validator against the payload, maps the
// course ids to store references, strips client-local ids, stamps authorship
// and timestamps, and inserts exactly one document. Either the whole
// assignment is stored or nothing is.
func (s *assignmentService) Submit(ctx context.Context, payload dto.AssignmentSubmitRequest, createdBy, idempotencyKey string) (SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "assignment.submit")
	defer span.End()

	span.SetAttributes(
		attribute.Int("assignment.courses", len(payload.SelectedCourseIDs)),
		attribute.Int("assignment.topics", len(payload.Topics)),
	)

	topics := s.cleanTopics(payload.DraftTopics())
	if violation := draft.Validate(payload.SelectedCourseIDs, topics); violation != nil {
		observability.Submissions().WithLabelValues("rejected").Inc()
		observability.SubmissionViolations().WithLabelValues(string(violation.Kind)).Inc()
		span.SetStatus(codes.Error, "validation failed")
		span.SetAttributes(attribute.String("assignment.violation", string(violation.Kind)))
		return SubmitResult{}, &ValidationError{Violation: violation}
	}

	courseIDs, err := s.mapCourseIDs(payload.SelectedCourseIDs)
	if err != nil {
		observability.Submissions().WithLabelValues("rejected").Inc()
		span.SetStatus(codes.Error, "malformed course id")
		return SubmitResult{}, err
	}

	if idempotencyKey != "" && s.cache != nil {
		result, proceed, err := s.claimIdempotencyKey(ctx, idempotencyKey)
		if err != nil || !proceed {
			return result, err
		}
	}

	assignment := s.buildAssignment(courseIDs, topics, createdBy)
	if err := s.repo.Insert(ctx, &assignment); err != nil {
		observability.Submissions().WithLabelValues("failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		s.releaseIdempotencyKey(ctx, idempotencyKey)
		return SubmitResult{}, err
	}

	if idempotencyKey != "" && s.cache != nil {
		if err := s.cache.Set(ctx, idempotencyCacheKey(idempotencyKey), assignment.ID.Hex(), s.idemTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record idempotency result")
		}
	}

	observability.Submissions().WithLabelValues("accepted").Inc()
	s.logger.Info().
		Str("assignment_id", assignment.ID.Hex()).
		Str("created_by", createdBy).
		Int("topics", len(assignment.Topics)).
		Int("questions", assignment.QuestionCount()).
		Msg("assignment created")

	if s.activity != nil {
		s.activity.Publish(ctx, "assignment.created", map[string]interface{}{
			"assignment_id": assignment.ID.Hex(),
			"created_by":    createdBy,
			"topics":        len(assignment.Topics),
		})
	}

	return SubmitResult{AssignmentID: assignment.ID.Hex()}, nil
}

func (s *assignmentService) List(ctx context.Context) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *assignmentService) Get(ctx context.Context, id string) (dto.AssignmentResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return dto.AssignmentResponse{}, ErrAssignmentNotFound
	}

	assignment, err := s.repo.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}
	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) mapCourseIDs(ids []string) ([]primitive.ObjectID, error) {
	courseIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedCourseID, id)
		}
		courseIDs = append(courseIDs, objectID)
	}
	return courseIDs, nil
}

// claimIdempotencyKey reserves the key before the insert. A replay that finds
// a stored assignment id returns it without touching the store; a replay that
// races a still-running submission is told to retry later.
func (s *assignmentService) claimIdempotencyKey(ctx context.Context, key string) (SubmitResult, bool, error) {
	cacheKey := idempotencyCacheKey(key)

	claimed, err := s.cache.SetNX(ctx, cacheKey, idempotencyPending, s.idemTTL).Result()
	if err != nil {
		// The ledger is an optimization; a broken cache must not block submits.
		s.logger.Warn().Err(err).Msg("idempotency ledger unavailable")
		return SubmitResult{}, true, nil
	}
	if claimed {
		return SubmitResult{}, true, nil
	}

	value, err := s.cache.Get(ctx, cacheKey).Result()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read idempotency ledger")
		return SubmitResult{}, true, nil
	}
	if value == idempotencyPending {
		return SubmitResult{}, false, ErrSubmissionInFlight
	}

	observability.Submissions().WithLabelValues("replayed").Inc()
	s.logger.Info().Str("assignment_id", value).Msg("idempotent submission replayed")
	return SubmitResult{AssignmentID: value, Replayed: true}, false, nil
}

func (s *assignmentService) releaseIdempotencyKey(ctx context.Context, key string) {
	if key == "" || s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, idempotencyCacheKey(key)).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to release idempotency key")
	}
}

// cleanTopics sanitizes every author-provided string into the exact form
// that would be persisted, before validation runs. A markup-only option or
// title sanitizes to blank here and is judged blank by the validator, so a
// stored assignment always re-validates clean.
func (s *assignmentService) cleanTopics(topics []draft.Topic) []draft.Topic {
	for ti := range topics {
		topics[ti].Title = s.cleanText(topics[ti].Title)
		for qi := range topics[ti].Questions {
			question := &topics[ti].Questions[qi]
			question.Text = s.cleanText(question.Text)
			for oi := range question.Options {
				question.Options[oi] = s.cleanText(question.Options[oi])
			}
		}
	}
	return topics
}

// buildAssignment maps validated, sanitized draft topics into the persisted
// shape: ids stripped, blank MCQ options filtered out, authorship and
// timestamps stamped server-side.
func (s *assignmentService) buildAssignment(courseIDs []primitive.ObjectID, topics []draft.Topic, createdBy string) models.Assignment {
	now := s.now().UTC()

	persisted := make([]models.AssignmentTopic, 0, len(topics))
	for _, topic := range topics {
		questions := make([]models.AssignmentQuestion, 0, len(topic.Questions))
		for _, q := range topic.Questions {
			question := models.AssignmentQuestion{
				QuestionText: q.Text,
				Type:         string(q.Type),
			}
			if q.Type == draft.QuestionTypeMCQ {
				index := q.CorrectAnswerIndex
				question.Options = draft.NormalizeOptions(q.Options)
				question.CorrectAnswerIndex = &index
			}
			questions = append(questions, question)
		}
		persisted = append(persisted, models.AssignmentTopic{
			Title:     topic.Title,
			Questions: questions,
		})
	}

	return models.Assignment{
		SelectedCourseIDs: courseIDs,
		Topics:            persisted,
		CreatedBy:         createdBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *assignmentService) cleanText(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}
