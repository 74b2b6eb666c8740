package app

import (
	"context"

	"github.com/polkiloo/gobank/internal/adapter/google"
	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/usecase"
)

// BankFacade is the single entry point the HTTP layer talks to.
type BankFacade struct {
	auth      *usecase.AuthUseCase
	federated *usecase.FederatedUseCase
	bank      *usecase.BankUseCase
	provider  google.Client
}

// NewBankFacade constructs BankFacade.
func NewBankFacade(auth *usecase.AuthUseCase, federated *usecase.FederatedUseCase, bank *usecase.BankUseCase, provider google.Client) *BankFacade {
	return &BankFacade{auth: auth, federated: federated, bank: bank, provider: provider}
}

func (f *BankFacade) Register(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password)
	return token, err
}

func (f *BankFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *BankFacade) ParseSession(token string) (int64, error) {
	return f.auth.ParseSession(token)
}

// AuthCodeURL builds the provider redirect URL for the given state.
func (f *BankFacade) AuthCodeURL(state string) string {
	return f.provider.AuthCodeURL(state)
}

// CompleteFederatedLogin exchanges the authorization code, finds or creates
// the linked account and returns a session token.
func (f *BankFacade) CompleteFederatedLogin(ctx context.Context, code string) (string, error) {
	profile, err := f.provider.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	_, token, err := f.federated.Login(ctx, *profile)
	return token, err
}

func (f *BankFacade) Account(ctx context.Context, userID int64) (*model.User, error) {
	return f.bank.Account(ctx, userID)
}

func (f *BankFacade) Deposit(ctx context.Context, userID int64, amount float64) error {
	return f.bank.Deposit(ctx, userID, amount)
}

func (f *BankFacade) Transfer(ctx context.Context, fromID int64, toAccount string, amount float64) error {
	return f.bank.Transfer(ctx, fromID, toAccount, amount)
}
