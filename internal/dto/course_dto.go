package dto

import (
	"time"

	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
)

// CourseCreateRequest describes the payload for creating a course.
type CourseCreateRequest struct {
	Subjects   string `json:"subjects" validate:"required,min=2"`
	Duration   string `json:"duration" validate:"required"`
	CourseFees int    `json:"courseFees" validate:"gte=0"`
	Type       string `json:"type" validate:"omitempty,oneof=scholarship regular"`
}

// CourseResponse is the serialized representation of a course.
type CourseResponse struct {
	ID         string    `json:"id"`
	Subjects   string    `json:"subjects"`
	Duration   string    `json:"duration"`
	CourseFees int       `json:"courseFees"`
	Type       string    `json:"type,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewCourseResponse converts a model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:         model.ID.Hex(),
		Subjects:   model.Subjects,
		Duration:   model.Duration,
		CourseFees: model.CourseFees,
		Type:       model.Type,
		CreatedAt:  model.CreatedAt,
	}
}

// NewCourseResponseSlice converts a slice of models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}

	return responses
}
