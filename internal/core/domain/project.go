package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	StatusPending    ProjectStatus = "pending"
	StatusInProgress ProjectStatus = "in-progress"
	StatusCompleted  ProjectStatus = "completed"
)

// Valid reports whether s is one of the accepted project states.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Project is a piece of work commissioned by a client.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	ClientID    string        `json:"client_id"`
	Client      *ClientRef    `json:"client,omitempty"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Validate checks the project's own fields. Client existence is a
// cross-resource concern checked by the service against the client store.
func (p *Project) Validate() error {
	if p.Title == "" || p.ClientID == "" {
		return Validation("title and client are required")
	}
	if p.Description == "" {
		return Validation("description is required")
	}
	if p.Status != "" && !p.Status.Valid() {
		return Validation("status must be one of: pending, in-progress, completed")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return Validation("end date must not precede start date")
	}
	return nil
}
