package domain

import "strings"

// User is the signed-in educator. Only the configured demo account exists.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewUser creates a new User instance
func NewUser(id, email, name string) *User {
	return &User{
		ID:    id,
		Email: strings.ToLower(strings.TrimSpace(email)),
		Name:  name,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.ID == "" {
		return NewMissingFieldError("id")
	}
	if u.Email == "" {
		return NewMissingFieldError("email")
	}
	return nil
}
