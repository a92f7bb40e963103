package account

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/entity"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/repo"
	categoryentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/category/entity"
	coupleentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/couple/entity"
	settingentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/entity"
)

// Store is the persistence collaborator of the provisioning workflow.
type Store interface {
	// FindAccountByEmail returns nil, nil when the email is free.
	FindAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	// InTx commits every write made through the Writer, or none of them.
	InTx(ctx context.Context, fn func(Writer) error) error
}

// Writer is the set of writes available inside the atomic section. The
// credential write is the hand-off to the credential store; it lives in the
// same transaction so a rolled back account never leaves a dangling hash.
type Writer interface {
	CreateAccount(ctx context.Context, a *entity.Account) error
	SaveCredential(ctx context.Context, c *entity.Credential) error
	CreatePersonalSettings(ctx context.Context, s *settingentity.PersonalSettings) error
	CreateSharedProfile(ctx context.Context, p *coupleentity.SharedProfile, s *settingentity.SharedSettings) error
	LinkSharedProfile(ctx context.Context, a *entity.Account, profileID string) error
	CreateCategory(ctx context.Context, c *categoryentity.Category) error
}

type sqlStore struct {
	store *repo.Store
}

// NewSQLStore returns the sqlx-backed Store.
func NewSQLStore(db *sqlx.DB) Store {
	return sqlStore{store: repo.NewStore(db)}
}

func (s sqlStore) FindAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return s.store.FindAccountByEmail(ctx, email)
}

func (s sqlStore) InTx(ctx context.Context, fn func(Writer) error) error {
	return s.store.InTx(ctx, func(w *repo.TxWriter) error { return fn(w) })
}
