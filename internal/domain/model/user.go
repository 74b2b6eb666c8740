package model

import "time"

// User represents a bank account holder. An account is created either by
// credential registration or by the first successful Google sign-in.
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	GoogleID      string
	Name          string
	Picture       string
	AccountNumber string
	Balance       float64
	CreatedAt     time.Time
}

// Federated reports whether the account is linked to an external identity.
func (u *User) Federated() bool {
	return u.GoogleID != ""
}

// DisplayName returns the best label for greeting the user.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
