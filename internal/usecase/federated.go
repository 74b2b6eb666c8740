package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/domain/repository"
	pkgAuth "github.com/polkiloo/gobank/internal/pkg/auth"
)

// FederatedUseCase completes a federated sign-in by locating or creating
// the account linked to the provider subject id.
type FederatedUseCase struct {
	users    repository.UserRepository
	sessions pkgAuth.SessionStrategy
}

// NewFederatedUseCase constructs FederatedUseCase.
func NewFederatedUseCase(users repository.UserRepository, sessions pkgAuth.SessionStrategy) *FederatedUseCase {
	return &FederatedUseCase{users: users, sessions: sessions}
}

// Login finds or creates the user for the profile and returns a session token.
// The lookup keys strictly on the subject id: a credential account with the
// same email is a distinct record and is not merged.
func (u *FederatedUseCase) Login(ctx context.Context, profile model.FederatedProfile) (*model.User, string, error) {
	if profile.SubjectID == "" {
		return nil, "", domainErrors.ErrFederatedAuth
	}

	usr, err := u.users.FindOrCreateFederated(ctx, profile)
	if err != nil {
		return nil, "", fmt.Errorf("find or create federated user: %w", err)
	}

	token, err := u.sessions.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}
