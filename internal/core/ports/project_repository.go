package ports

import (
	"context"

	"github.com/deptworks/consultancy-api/internal/core/domain"
)

// ProjectRepository defines the persistence contract for project records.
// List and ListByClient return projects ordered by start date ascending.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error)
	Update(ctx context.Context, id string, project *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectCache is an advisory read cache for per-client project listings.
// Implementations must degrade gracefully: a cache failure never fails the
// surrounding request.
type ProjectCache interface {
	GetByClient(ctx context.Context, clientID string) ([]*domain.Project, bool, error)
	SetByClient(ctx context.Context, clientID string, projects []*domain.Project) error
	InvalidateClient(ctx context.Context, clientID string) error
}
