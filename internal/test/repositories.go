package test

import (
	"context"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests. Transfer and
// FindOrCreateFederated mimic the transactional storage semantics.
type UserRepositoryStub struct {
	ByEmail  map[string]*model.User
	ByID     map[int64]*model.User
	BySub    map[string]*model.User
	Next     int64
	Err      error
	Transfers []TransferCall
}

// TransferCall records a Transfer invocation.
type TransferCall struct {
	FromID    int64
	ToAccount string
	Amount    float64
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		BySub:   make(map[string]*model.User),
		Next:    1,
	}
}

// Create registers user unless the email is taken or the stub has an explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash, accountNumber string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if existing, exists := s.ByEmail[email]; exists && existing.PasswordHash != "" {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash, AccountNumber: accountNumber}
	s.Next++
	s.ByEmail[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches a credential user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok && user.PasswordHash != "" {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// FindOrCreateFederated returns the user keyed by subject id, creating it on
// first call and refreshing profile fields on repeats.
func (s *UserRepositoryStub) FindOrCreateFederated(ctx context.Context, profile model.FederatedProfile) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.BySub[profile.SubjectID]; ok {
		user.Email = profile.Email
		user.Name = profile.Name
		user.Picture = profile.Picture
		return user, nil
	}
	user := &model.User{
		ID:            s.Next,
		Email:         profile.Email,
		GoogleID:      profile.SubjectID,
		Name:          profile.Name,
		Picture:       profile.Picture,
		AccountNumber: profile.SubjectID,
	}
	s.Next++
	s.BySub[profile.SubjectID] = user
	s.ByID[user.ID] = user
	return user, nil
}

// Deposit increments the user's balance.
func (s *UserRepositoryStub) Deposit(ctx context.Context, userID int64, amount float64) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Balance += amount
	return nil
}

// Transfer moves amount between accounts with the storage's failure modes.
func (s *UserRepositoryStub) Transfer(ctx context.Context, fromID int64, toAccount string, amount float64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Transfers = append(s.Transfers, TransferCall{FromID: fromID, ToAccount: toAccount, Amount: amount})

	var recipient *model.User
	for _, user := range s.ByID {
		if user.AccountNumber == toAccount || (user.GoogleID != "" && user.GoogleID == toAccount) {
			recipient = user
			break
		}
	}
	if recipient == nil {
		return domainErrors.ErrNotFound
	}
	if recipient.ID == fromID {
		return domainErrors.ErrInvalidAmount
	}
	sender, ok := s.ByID[fromID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if sender.Balance < amount {
		return domainErrors.ErrInsufficientBalance
	}
	sender.Balance -= amount
	recipient.Balance += amount
	return nil
}
