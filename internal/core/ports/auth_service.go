package ports

import (
	"context"

	"github.com/deptworks/consultancy-api/internal/core/domain"
)

// SignupInput carries the raw signup payload into the auth service.
type SignupInput struct {
	Name       string
	Email      string
	Password   string
	Phone      string
	Role       string
	Department string
	MatNo      string
	Level      string
}

// LoginInput carries login credentials. Portal names the role of the login
// surface the request came from; when set, a stored user under the other
// role yields domain.ErrWrongPortal instead of a generic failure.
type LoginInput struct {
	Email    string
	Password string
	Portal   string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, string, error)
	Login(ctx context.Context, in LoginInput) (*domain.User, string, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, caller domain.Identity, id string) (*domain.User, error)
	DeleteUser(ctx context.Context, caller domain.Identity, id string) (*domain.User, error)
}
