package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/domain/repository"
)

// BankUseCase manages balance operations.
type BankUseCase struct {
	users repository.UserRepository
}

// NewBankUseCase constructs BankUseCase.
func NewBankUseCase(users repository.UserRepository) *BankUseCase {
	return &BankUseCase{users: users}
}

// Account returns the full account record for the user.
func (u *BankUseCase) Account(ctx context.Context, userID int64) (*model.User, error) {
	return u.users.GetByID(ctx, userID)
}

// Deposit credits the user's own balance.
func (u *BankUseCase) Deposit(ctx context.Context, userID int64, amount float64) error {
	if amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return u.users.Deposit(ctx, userID, amount)
}

// Transfer moves amount from the user to the account addressed by toAccount.
// Debit and credit happen in one transaction; an unknown recipient leaves
// the sender untouched.
func (u *BankUseCase) Transfer(ctx context.Context, fromID int64, toAccount string, amount float64) error {
	toAccount = strings.TrimSpace(toAccount)
	if toAccount == "" {
		return domainErrors.ErrNotFound
	}
	if amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return u.users.Transfer(ctx, fromID, toAccount, amount)
}
