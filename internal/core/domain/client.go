package domain

import "time"

// Client is an external entity that commissions projects.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientRef is the trimmed client view embedded in project listings.
type ClientRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Ref returns the embeddable summary of the client.
func (c *Client) Ref() ClientRef {
	return ClientRef{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}
