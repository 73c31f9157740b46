package handler

import (
	"time"

	"github.com/deptworks/consultancy-api/internal/core/domain"
	"github.com/deptworks/consultancy-api/internal/core/ports"
)

type projectRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
	Client      string `json:"client"      validate:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type projectClientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type projectResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Client      *projectClientResponse `json:"client,omitempty"`
	ClientID    string                 `json:"client_id"`
	StartDate   *time.Time             `json:"startDate,omitempty"`
	EndDate     *time.Time             `json:"endDate,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type projectEnvelope struct {
	Message string          `json:"message"`
	Project projectResponse `json:"project"`
}

type deletedProjectEnvelope struct {
	Message        string          `json:"message"`
	DeletedProject projectResponse `json:"deletedProject"`
}

// toProjectInput parses the optional date strings. Dates accept RFC 3339 or
// a plain calendar day.
func (r projectRequest) toProjectInput() (ports.ProjectInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return ports.ProjectInput{}, domain.Validation("invalid start date format")
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return ports.ProjectInput{}, domain.Validation("invalid end date format")
	}
	return ports.ProjectInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		ClientID:    r.Client,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.Validation("invalid date format")
}

func toProjectResponse(p *domain.Project) projectResponse {
	resp := projectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		ClientID:    p.ClientID,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Client != nil {
		resp.Client = &projectClientResponse{
			ID:    p.Client.ID,
			Name:  p.Client.Name,
			Email: p.Client.Email,
			Phone: p.Client.Phone,
		}
	}
	return resp
}

func toProjectResponses(projects []*domain.Project) []projectResponse {
	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	return out
}
