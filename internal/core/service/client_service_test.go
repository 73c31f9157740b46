package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/deptworks/consultancy-api/internal/core/domain"
	"github.com/deptworks/consultancy-api/internal/core/ports"
)

type stubClientRepo struct {
	clients map[string]*domain.Client // keyed by id
	nextID  int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func cloneClient(c *domain.Client) *domain.Client {
	clone := *c
	return &clone
}

func (r *stubClientRepo) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	for _, existing := range r.clients {
		if existing.Email == client.Email {
			return nil, domain.ErrClientExists
		}
	}
	created := cloneClient(client)
	r.nextID++
	created.ID = "client_" + strconv.Itoa(r.nextID)
	r.clients[created.ID] = cloneClient(created)
	return created, nil
}

func (r *stubClientRepo) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.Email == email {
			return cloneClient(c), nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	if c, ok := r.clients[id]; ok {
		return cloneClient(c), nil
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, cloneClient(c))
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, id string, client *domain.Client) (*domain.Client, error) {
	existing, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	existing.Name = client.Name
	existing.Email = client.Email
	existing.Phone = client.Phone
	existing.UpdatedAt = client.UpdatedAt
	return cloneClient(existing), nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

func TestClientService_Create(t *testing.T) {
	svc := NewClientService(newStubClientRepo())

	client, err := svc.Create(context.Background(), ports.ClientInput{
		Name:  "Acme Ltd",
		Email: "Contact@Acme.example",
		Phone: "08030000000",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if client.ID == "" {
		t.Fatalf("expected an id")
	}
	if client.Email != "contact@acme.example" {
		t.Fatalf("email not normalized: %s", client.Email)
	}
}

func TestClientService_Create_Duplicate(t *testing.T) {
	svc := NewClientService(newStubClientRepo())

	if _, err := svc.Create(context.Background(), ports.ClientInput{Name: "Acme", Email: "contact@acme.example"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.Create(context.Background(), ports.ClientInput{Name: "Other", Email: "contact@acme.example"})
	if !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}
}

func TestClientService_Create_Validation(t *testing.T) {
	svc := NewClientService(newStubClientRepo())

	if _, err := svc.Create(context.Background(), ports.ClientInput{Name: "Acme"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClientService_Update_NotFound(t *testing.T) {
	svc := NewClientService(newStubClientRepo())

	_, err := svc.Update(context.Background(), "missing", ports.ClientInput{Name: "Acme", Email: "a@b.example"})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientService_Delete(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo)

	client, err := svc.Create(context.Background(), ports.ClientInput{Name: "Acme", Email: "a@b.example"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), client.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), client.ID); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound on second delete, got %v", err)
	}
}
