package dto

import (
	"time"

	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
)

// LectureCreateRequest describes the payload for publishing a video lecture.
type LectureCreateRequest struct {
	VideoName   string   `json:"videoName" validate:"required,min=2"`
	VideoURL    string   `json:"videoURL" validate:"required,url"`
	Description string   `json:"description"`
	TargetType  string   `json:"targetType" validate:"required,oneof=group subject"`
	TargetValue []string `json:"targetValue" validate:"required,min=1,dive,required"`
}

// LectureResponse is the serialized representation of a lecture.
type LectureResponse struct {
	ID          string    `json:"id"`
	VideoName   string    `json:"videoName"`
	VideoURL    string    `json:"videoURL"`
	Description string    `json:"description,omitempty"`
	TargetType  string    `json:"targetType"`
	TargetValue []string  `json:"targetValue"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewLectureResponse converts a model into a DTO.
func NewLectureResponse(model models.Lecture) LectureResponse {
	return LectureResponse{
		ID:          model.ID.Hex(),
		VideoName:   model.VideoName,
		VideoURL:    model.VideoURL,
		Description: model.Description,
		TargetType:  model.TargetType,
		TargetValue: model.TargetValue,
		CreatedAt:   model.CreatedAt,
	}
}

// NewLectureResponseSlice converts a slice of models into DTOs.
func NewLectureResponseSlice(lectures []models.Lecture) []LectureResponse {
	responses := make([]LectureResponse, 0, len(lectures))
	for _, lecture := range lectures {
		responses = append(responses, NewLectureResponse(lecture))
	}

	return responses
}
