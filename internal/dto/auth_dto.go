package dto

// LoginRequest is the body of POST /auth/login. The lookup is a plaintext
// uid/password comparison; credential hardening is out of scope.
type LoginRequest struct {
	UID      string `json:"uid" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token and enough profile data for
// the client to render its header without a second round trip.
type LoginResponse struct {
	Token          string   `json:"token"`
	UID            string   `json:"uid"`
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Group          string   `json:"group,omitempty"`
	Subjects       []string `json:"subjects,omitempty"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
}
