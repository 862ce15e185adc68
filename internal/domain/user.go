package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	TaxID        string    `json:"tax_id,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	Street       string    `json:"street,omitempty"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileUpdate holds the mutable subset of account fields. Email, password
// and role are never altered through a profile update.
type ProfileUpdate struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}
