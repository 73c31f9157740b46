package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/deptworks/consultancy-api/internal/core/domain"
	"github.com/deptworks/consultancy-api/internal/core/ports"
	"github.com/deptworks/consultancy-api/internal/core/token"
)

// bcryptCost matches the work factor the records were written with.
const bcryptCost = 10

// AuthService implements signup, login and user administration.
type AuthService struct {
	repo   ports.UserRepository
	issuer *token.Issuer
}

func NewAuthService(repo ports.UserRepository, issuer *token.Issuer) *AuthService {
	return &AuthService{repo: repo, issuer: issuer}
}

// Signup validates the role-conditional payload, hashes the password and
// creates the user. The existence check is a fast path only; the unique
// email index at the store is the real uniqueness enforcement, so a racing
// duplicate insert still surfaces as domain.ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, string, error) {
	if in.Password == "" {
		return nil, "", domain.Validation("password is required")
	}
	if len(in.Password) < 6 {
		return nil, "", domain.Validation("password must be at least 6 characters")
	}

	user := &domain.User{
		Name:       in.Name,
		Email:      domain.NormalizeEmail(in.Email),
		Role:       in.Role,
		Phone:      in.Phone,
		Department: in.Department,
	}
	if in.Role == domain.RoleStudent {
		user.Student = &domain.StudentDetails{MatNo: in.MatNo, Level: in.Level}
	} else if in.MatNo != "" || in.Level != "" {
		return nil, "", domain.Validation("mat_no and level are not allowed for lecturers")
	}
	if err := user.Validate(); err != nil {
		return nil, "", err
	}

	if _, err := s.repo.FindByEmail(ctx, user.Email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = string(hash)

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	tkn, err := s.issuer.Issue(created)
	if err != nil {
		return nil, "", err
	}
	return created, tkn, nil
}

// Login resolves credentials with a three-way branch: unknown email,
// known email under the other role (portal hint), then password check.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.User, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", domain.Validation("email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(in.Email))
	if err != nil {
		return nil, "", err
	}

	// Same email exists but on the other portal: say so regardless of the
	// password, rather than letting the caller chase a generic failure.
	if in.Portal != "" && in.Portal != user.Role {
		return nil, "", domain.ErrWrongPortal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	tkn, err := s.issuer.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, tkn, nil
}

// ListUsers returns all users. Role gating happens at the route level.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// GetUser returns a user record if the caller is a lecturer or the record
// is the caller's own.
func (s *AuthService) GetUser(ctx context.Context, caller domain.Identity, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleLecturer && caller.UserID != user.ID {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// DeleteUser removes a user. Only lecturers may delete; a lecturer may
// delete themself but never another lecturer. Returns the deleted record.
func (s *AuthService) DeleteUser(ctx context.Context, caller domain.Identity, id string) (*domain.User, error) {
	if caller.Role != domain.RoleLecturer {
		return nil, domain.ErrForbidden
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target.IsLecturer() && target.ID != caller.UserID {
		return nil, domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return target, nil
}
