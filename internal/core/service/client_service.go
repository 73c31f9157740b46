package service

import (
	"context"
	"errors"
	"time"

	"github.com/deptworks/consultancy-api/internal/core/domain"
	"github.com/deptworks/consultancy-api/internal/core/ports"
)

// ClientService implements CRUD over client records.
type ClientService struct {
	repo ports.ClientRepository
}

func NewClientService(repo ports.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) Create(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.Validation("name and email are required")
	}

	email := domain.NormalizeEmail(in.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrClientExists
	} else if !errors.Is(err, domain.ErrClientNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Client{
		Name:      in.Name,
		Email:     email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) Update(ctx context.Context, id string, in ports.ClientInput) (*domain.Client, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.Validation("name and email are required")
	}
	return s.repo.Update(ctx, id, &domain.Client{
		Name:      in.Name,
		Email:     domain.NormalizeEmail(in.Email),
		Phone:     in.Phone,
		UpdatedAt: time.Now().UTC(),
	})
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
