package ports

import (
	"context"

	"github.com/deptworks/consultancy-api/internal/core/domain"
)

// ClientRepository defines the persistence contract for client records.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, id string, client *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
