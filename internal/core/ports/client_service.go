package ports

import (
	"context"

	"github.com/deptworks/consultancy-api/internal/core/domain"
)

// ClientInput carries client fields into create and update operations.
type ClientInput struct {
	Name  string
	Email string
	Phone string
}

type ClientService interface {
	Create(ctx context.Context, in ClientInput) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, id string, in ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
