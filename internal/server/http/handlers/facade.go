package handlers

import (
	"context"

	"github.com/polkiloo/gobank/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseSession(token string) (int64, error)
}

// FederatedFacade drives the provider redirect flow.
type FederatedFacade interface {
	AuthCodeURL(state string) string
	CompleteFederatedLogin(ctx context.Context, code string) (string, error)
}

// AccountFacade provides balance related operations.
type AccountFacade interface {
	Account(ctx context.Context, userID int64) (*model.User, error)
	Deposit(ctx context.Context, userID int64, amount float64) error
	Transfer(ctx context.Context, fromID int64, toAccount string, amount float64) error
}

// BankFacade aggregates the full set of operations used across handlers.
type BankFacade interface {
	AuthFacade
	FederatedFacade
	AccountFacade
}
