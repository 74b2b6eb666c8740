package repository

import (
	"context"

	"github.com/polkiloo/gobank/internal/domain/model"
)

// UserRepository describes persistence operations for bank accounts.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, accountNumber string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// FindOrCreateFederated resolves the account linked to the provider
	// subject id, creating it on first login. Repeat logins for the same
	// subject must return the same record.
	FindOrCreateFederated(ctx context.Context, profile model.FederatedProfile) (*model.User, error)
	// Deposit increases the balance of the given account.
	Deposit(ctx context.Context, userID int64, amount float64) error
	// Transfer atomically moves amount from the sender to the account
	// addressed by toAccount (account number or provider subject id).
	Transfer(ctx context.Context, fromID int64, toAccount string, amount float64) error
}
