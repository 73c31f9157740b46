package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/deptworks/consultancy-api/internal/core/domain"
	"github.com/deptworks/consultancy-api/internal/core/ports"
)

// ProjectService implements CRUD over projects with referential checks
// against the client store and an advisory per-client listing cache.
type ProjectService struct {
	repo    ports.ProjectRepository
	clients ports.ClientRepository
	cache   ports.ProjectCache
	log     zerolog.Logger
}

// NewProjectService builds the service. cache may be nil; listings then
// always hit the store.
func NewProjectService(repo ports.ProjectRepository, clients ports.ClientRepository, cache ports.ProjectCache, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, clients: clients, cache: cache, log: log}
}

func (s *ProjectService) Create(ctx context.Context, in ports.ProjectInput) (*domain.Project, error) {
	project := projectFromInput(in)
	if project.Status == "" {
		project.Status = domain.StatusPending
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}
	created.Client = ref(client)

	s.invalidate(ctx, created.ClientID)
	return created, nil
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.resolveClients(ctx, projects)
	return projects, nil
}

// resolveClients attaches the client summary to each project, one lookup per
// distinct client. A project whose client has since been deleted keeps a nil
// ref rather than failing the listing.
func (s *ProjectService) resolveClients(ctx context.Context, projects []*domain.Project) {
	refs := make(map[string]*domain.ClientRef)
	for _, p := range projects {
		r, ok := refs[p.ClientID]
		if !ok {
			if client, err := s.clients.FindByID(ctx, p.ClientID); err == nil {
				r = ref(client)
			}
			refs[p.ClientID] = r
		}
		p.Client = r
	}
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client, err := s.clients.FindByID(ctx, project.ClientID); err == nil {
		project.Client = ref(client)
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in ports.ProjectInput) (*domain.Project, error) {
	project := projectFromInput(in)
	if err := project.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
		return nil, err
	}

	// The project may move between clients; drop both listings.
	previous, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// An omitted status keeps the stored one; the pending default applies
	// at creation only.
	if project.Status == "" {
		project.Status = previous.Status
	}

	project.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, id, project)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, updated.ClientID)
	if previous.ClientID != updated.ClientID {
		s.invalidate(ctx, previous.ClientID)
	}
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.invalidate(ctx, project.ClientID)
	return project, nil
}

// ListByClient returns the client's projects with the client summary
// embedded, serving from the cache when it holds a fresh listing. Cache
// failures fall through to the store.
func (s *ProjectService) ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if projects, ok, err := s.cache.GetByClient(ctx, clientID); err != nil {
			s.log.Warn().Err(err).Str("client_id", clientID).Msg("project cache read failed")
		} else if ok {
			return projects, nil
		}
	}

	projects, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		p.Client = ref(client)
	}

	if s.cache != nil {
		if err := s.cache.SetByClient(ctx, clientID, projects); err != nil {
			s.log.Warn().Err(err).Str("client_id", clientID).Msg("project cache write failed")
		}
	}
	return projects, nil
}

func (s *ProjectService) invalidate(ctx context.Context, clientID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateClient(ctx, clientID); err != nil {
		s.log.Warn().Err(err).Str("client_id", clientID).Msg("project cache invalidation failed")
	}
}

func projectFromInput(in ports.ProjectInput) *domain.Project {
	return &domain.Project{
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.ProjectStatus(in.Status),
		ClientID:    in.ClientID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
}

func ref(c *domain.Client) *domain.ClientRef {
	r := c.Ref()
	return &r
}
