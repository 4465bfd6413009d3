package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a customer who books jobs
type User struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Address     *string   `json:"address,omitempty"`
	City        *string   `json:"city,omitempty"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// Validate checks required fields
func (r *CreateUserRequest) Validate() error {
	if r.FirstName == "" {
		return ErrValidation("first_name is required")
	}
	if r.LastName == "" {
		return ErrValidation("last_name is required")
	}
	if r.Email == "" {
		return ErrValidation("email is required")
	}
	if r.PhoneNumber == "" {
		return ErrValidation("phone_number is required")
	}
	return nil
}

// ToUser converts the request to a User
func (r *CreateUserRequest) ToUser() *User {
	return &User{
		ID:          uuid.New(),
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		City:        r.City,
		Lat:         r.Lat,
		Lng:         r.Lng,
		CreatedAt:   time.Now().UTC(),
	}
}

// UpdateUserRequest is the request body for updating a user.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	FirstName   *string  `json:"first_name"`
	LastName    *string  `json:"last_name"`
	Email       *string  `json:"email"`
	PhoneNumber *string  `json:"phone_number"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// Apply merges the request into an existing user
func (r *UpdateUserRequest) Apply(u *User) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = *r.PhoneNumber
	}
	if r.Address != nil {
		u.Address = r.Address
	}
	if r.City != nil {
		u.City = r.City
	}
	if r.Lat != nil {
		u.Lat = r.Lat
	}
	if r.Lng != nil {
		u.Lng = r.Lng
	}
}
