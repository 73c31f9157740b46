package handler

import (
	"time"

	"github.com/deptworks/consultancy-api/internal/core/domain"
)

type signupRequest struct {
	Name       string `json:"name"       validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=6"`
	Phone      string `json:"phone"`
	MatNo      string `json:"mat_no"`
	Role       string `json:"role"       validate:"required,oneof=lecturer student"`
	Department string `json:"department" validate:"required"`
	Level      string `json:"level"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Role names the portal the login came from; optional for clients that
	// only ever talk to one portal.
	Role string `json:"role" validate:"omitempty,oneof=lecturer student"`
}

// userResponse is the public view of a user: the password hash is never
// serialized, and the student-only fields are flattened per the API contract.
type userResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	MatNo      string    `json:"mat_no,omitempty"`
	Role       string    `json:"role"`
	Phone      string    `json:"phone,omitempty"`
	Department string    `json:"department"`
	Level      string    `json:"level,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
}

type userEnvelope struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type usersResponse struct {
	Message string         `json:"message"`
	Count   int            `json:"count"`
	Users   []userResponse `json:"users"`
}

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Phone:      u.Phone,
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.Student != nil {
		resp.MatNo = u.Student.MatNo
		resp.Level = u.Student.Level
	}
	return resp
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}
