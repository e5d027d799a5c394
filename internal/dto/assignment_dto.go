package dto

import (
	"time"

	"github.com/riteshsinghh-coder/maxbytelms/internal/draft"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
)

// QuestionPayload is the wire shape of one question inside a submitted
// assignment. ID is a client-local presentation id; the server ignores it.
// CorrectAnswerIndex is a pointer so an mcq question that omits it is
// distinguishable from one that selects option zero.
type QuestionPayload struct {
	ID                 string   `json:"id,omitempty"`
	QuestionText       string   `json:"questionText"`
	Type               string   `json:"type"`
	Options            []string `json:"options,omitempty"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex,omitempty"`
}

// TopicPayload is the wire shape of one topic inside a submitted assignment.
type TopicPayload struct {
	ID        string            `json:"id,omitempty"`
	Title     string            `json:"title"`
	Questions []QuestionPayload `json:"questions"`
}

// AssignmentSubmitRequest is the body of POST /assignments. Field-level
// validation is deliberately absent: the shared submission validator owns
// every domain rule so the client and server cannot drift, and its ordered
// first-violation scan decides which message the author sees.
type AssignmentSubmitRequest struct {
	SelectedCourseIDs []string       `json:"selectedCourseIds"`
	Topics            []TopicPayload `json:"topics"`
}

// DraftTopics converts the wire payload into the shared validator's topic
// shape. Client-local ids are dropped; a missing correct-answer index maps to
// the unselected sentinel so validation rejects it.
func (r AssignmentSubmitRequest) DraftTopics() []draft.Topic {
	topics := make([]draft.Topic, 0, len(r.Topics))
	for _, t := range r.Topics {
		questions := make([]draft.Question, 0, len(t.Questions))
		for _, q := range t.Questions {
			index := draft.NoCorrectAnswer
			if q.CorrectAnswerIndex != nil {
				index = *q.CorrectAnswerIndex
			}
			questions = append(questions, draft.Question{
				Text:               q.QuestionText,
				Type:               draft.QuestionType(q.Type),
				Options:            q.Options,
				CorrectAnswerIndex: index,
			})
		}
		topics = append(topics, draft.Topic{Title: t.Title, Questions: questions})
	}
	return topics
}

// AssignmentSubmitResponse is returned when an assignment is persisted.
type AssignmentSubmitResponse struct {
	Message      string `json:"message"`
	AssignmentID string `json:"assignmentId"`
}

// AssignmentResponse is the serialized representation of a stored assignment.
type AssignmentResponse struct {
	ID                string                   `json:"id"`
	SelectedCourseIDs []string                 `json:"selectedCourseIds"`
	Topics            []models.AssignmentTopic `json:"topics"`
	CreatedBy         string                   `json:"createdBy"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	courseIDs := make([]string, 0, len(model.SelectedCourseIDs))
	for _, id := range model.SelectedCourseIDs {
		courseIDs = append(courseIDs, id.Hex())
	}

	return AssignmentResponse{
		ID:                model.ID.Hex(),
		SelectedCourseIDs: courseIDs,
		Topics:            model.Topics,
		CreatedBy:         model.CreatedBy,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
