package ports

import (
	"context"
	"time"

	"github.com/deptworks/consultancy-api/internal/core/domain"
)

// ProjectInput carries project fields into create and update operations.
type ProjectInput struct {
	Title       string
	Description string
	Status      string
	ClientID    string
	StartDate   *time.Time
	EndDate     *time.Time
}

type ProjectService interface {
	Create(ctx context.Context, in ProjectInput) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, id string, in ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) (*domain.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error)
}
