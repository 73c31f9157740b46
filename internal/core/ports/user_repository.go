package ports

import (
	"context"

	"github.com/deptworks/consultancy-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user records.
// Create must fail with domain.ErrEmailTaken when the unique email index
// rejects the insert; the service-level existence check is only a fast path.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
