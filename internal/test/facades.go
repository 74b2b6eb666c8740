package test

import (
	"context"

	"github.com/polkiloo/gobank/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
}

// Register delegates to provided function or succeeds with a fixed token.
func (s AuthFacadeStub) Register(ctx context.Context, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password)
	}
	return "token", nil
}

// Authenticate delegates to provided function or succeeds with a fixed token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseSession resolves tokens to user id 1 unless overridden.
func (s AuthFacadeStub) ParseSession(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// FederatedFacadeStub simulates the provider redirect flow.
type FederatedFacadeStub struct {
	AuthCodeURLFn func(string) string
	CompleteFn    func(context.Context, string) (string, error)
}

// AuthCodeURL returns a provider URL embedding the state.
func (s FederatedFacadeStub) AuthCodeURL(state string) string {
	if s.AuthCodeURLFn != nil {
		return s.AuthCodeURLFn(state)
	}
	return "https://provider.example/auth?state=" + state
}

// CompleteFederatedLogin delegates or returns a fixed token.
func (s FederatedFacadeStub) CompleteFederatedLogin(ctx context.Context, code string) (string, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, code)
	}
	return "token", nil
}

// AccountFacadeStub simulates balance operations.
type AccountFacadeStub struct {
	AccountFn  func(context.Context, int64) (*model.User, error)
	DepositFn  func(context.Context, int64, float64) error
	TransferFn func(context.Context, int64, string, float64) error
}

// Account returns configured user or a default record.
func (s AccountFacadeStub) Account(ctx context.Context, userID int64) (*model.User, error) {
	if s.AccountFn != nil {
		return s.AccountFn(ctx, userID)
	}
	return &model.User{ID: userID, Email: "user@example.com", AccountNumber: "acc-1", Balance: 10}, nil
}

// Deposit executes configured deposit handler.
func (s AccountFacadeStub) Deposit(ctx context.Context, userID int64, amount float64) error {
	if s.DepositFn != nil {
		return s.DepositFn(ctx, userID, amount)
	}
	return nil
}

// Transfer executes configured transfer handler.
func (s AccountFacadeStub) Transfer(ctx context.Context, fromID int64, toAccount string, amount float64) error {
	if s.TransferFn != nil {
		return s.TransferFn(ctx, fromID, toAccount, amount)
	}
	return nil
}

// BankFacadeStub aggregates the facade stubs for router level tests.
type BankFacadeStub struct {
	AuthFacadeStub
	FederatedFacadeStub
	AccountFacadeStub
}

// GoogleClientStub fakes the provider client.
type GoogleClientStub struct {
	URLFn      func(string) string
	ExchangeFn func(context.Context, string) (*model.FederatedProfile, error)
}

// AuthCodeURL returns configured or default provider URL.
func (s GoogleClientStub) AuthCodeURL(state string) string {
	if s.URLFn != nil {
		return s.URLFn(state)
	}
	return "https://provider.example/auth?state=" + state
}

// Exchange returns configured profile or a default one.
func (s GoogleClientStub) Exchange(ctx context.Context, code string) (*model.FederatedProfile, error) {
	if s.ExchangeFn != nil {
		return s.ExchangeFn(ctx, code)
	}
	return &model.FederatedProfile{SubjectID: "sub-1", Email: "user@example.com", Name: "User"}, nil
}
