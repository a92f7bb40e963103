package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/entity"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/repo"
)

// Service covers the read side of accounts: login and profile lookups.
type Service struct {
	repo   *repo.AccountRepo
	hasher PasswordHasher
}

func NewService(db *sqlx.DB, hasher PasswordHasher) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: DefaultBcryptCost}
	}
	return &Service{repo: repo.NewAccountRepo(db), hasher: hasher}
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords both return ErrBadCredentials.
func (s *Service) Authenticate(ctx context.Context, req LoginRequest) (*entity.Account, error) {
	in, err := validateLogin(req)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadCredentials
		} // avoid user enumeration
		return nil, err
	}
	cred, err := s.repo.GetCredential(ctx, a.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(cred.PasswordHash, in.Password) {
		return nil, ErrBadCredentials
	}
	return a, nil
}

// Get returns an account by id.
func (s *Service) Get(ctx context.Context, id string) (*entity.Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// SharedProfileID resolves the couple an account belongs to.
func (s *Service) SharedProfileID(ctx context.Context, accountID string) (string, bool, error) {
	return s.repo.SharedProfileID(ctx, accountID)
}
