package dto

import (
	"time"

	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
)

// registrationFeeMarker is the literal the legacy admin form posts when the
// registration fee has been collected.
const registrationFeeMarker = "₹500"

// StudentCreateRequest describes the payload for registering a student.
// RegistrationFeePaid keeps the legacy admin form's string marker.
type StudentCreateRequest struct {
	Name                string   `json:"name" validate:"required,min=2"`
	UID                 string   `json:"uid" validate:"required,min=2"`
	Password            string   `json:"password" validate:"required,min=4"`
	Group               string   `json:"group"`
	Subjects            []string `json:"subjects" validate:"required,min=1,dive,required"`
	Phone               string   `json:"phone"`
	Address             string   `json:"address"`
	RegistrationFeePaid string   `json:"registrationFeePaid"`
	ProfilePicture      string   `json:"profilePicture"`
}

// FeePaid normalizes the legacy marker into a boolean.
func (r StudentCreateRequest) FeePaid() bool {
	return r.RegistrationFeePaid == registrationFeeMarker || r.RegistrationFeePaid == "true"
}

// ProfileUpdateRequest carries the self-service profile changes. Both fields
// are optional; the photo travels as a separate multipart file part.
type ProfileUpdateRequest struct {
	Password string `form:"password" json:"password" validate:"omitempty,min=4"`
}

// StudentResponse is the serialized representation returned to API clients.
// The password never leaves the server.
type StudentResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	UID                 string    `json:"uid"`
	Group               string    `json:"group,omitempty"`
	Subjects            []string  `json:"subjects"`
	Phone               string    `json:"phone,omitempty"`
	Address             string    `json:"address,omitempty"`
	RegistrationFeePaid bool      `json:"registrationFeePaid"`
	ProfilePicture      string    `json:"profilePicture,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:                  model.ID.Hex(),
		Name:                model.Name,
		UID:                 model.UID,
		Group:               model.Group,
		Subjects:            model.Subjects,
		Phone:               model.Phone,
		Address:             model.Address,
		RegistrationFeePaid: model.RegistrationFeePaid,
		ProfilePicture:      model.ProfilePicture,
		CreatedAt:           model.CreatedAt,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}

	return responses
}
