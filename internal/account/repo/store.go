package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/entity"
	categoryentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/category/entity"
	categoryrepo "github.com/ovaphlow/pitchfork/service-couple-finance/internal/category/repo"
	coupleentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/couple/entity"
	couplerepo "github.com/ovaphlow/pitchfork/service-couple-finance/internal/couple/repo"
	settingentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/entity"
	settingrepo "github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/repo"
)

// Store runs the provisioning writes of all four entity groups in one transaction.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// FindAccountByEmail returns nil, nil when no account uses email.
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a, err := NewAccountRepo(s.db).GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// InTx runs fn inside a transaction. Any error from fn, a failed commit or a
// cancelled ctx rolls every write back.
func (s *Store) InTx(ctx context.Context, fn func(*TxWriter) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// no-op once committed
	defer tx.Rollback()

	if err := fn(newTxWriter(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// TxWriter exposes the per-entity writes bound to one transaction.
type TxWriter struct {
	accounts   *AccountRepo
	settings   *settingrepo.SettingRepo
	profiles   *couplerepo.ProfileRepo
	categories *categoryrepo.CategoryRepo
}

func newTxWriter(tx *sqlx.Tx) *TxWriter {
	return &TxWriter{
		accounts:   NewAccountRepo(tx),
		settings:   settingrepo.NewSettingRepo(tx),
		profiles:   couplerepo.NewProfileRepo(tx),
		categories: categoryrepo.NewCategoryRepo(tx),
	}
}

func (w *TxWriter) CreateAccount(ctx context.Context, a *entity.Account) error {
	if err := w.accounts.Create(ctx, a); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (w *TxWriter) SaveCredential(ctx context.Context, c *entity.Credential) error {
	if err := w.accounts.SaveCredential(ctx, c); err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (w *TxWriter) CreatePersonalSettings(ctx context.Context, s *settingentity.PersonalSettings) error {
	if err := w.settings.CreatePersonal(ctx, s); err != nil {
		return fmt.Errorf("insert personal settings: %w", err)
	}
	return nil
}

func (w *TxWriter) CreateSharedProfile(ctx context.Context, p *coupleentity.SharedProfile, s *settingentity.SharedSettings) error {
	return w.profiles.CreateWithSettings(ctx, p, s)
}

func (w *TxWriter) LinkSharedProfile(ctx context.Context, a *entity.Account, profileID string) error {
	if err := w.accounts.LinkSharedProfile(ctx, a.ID, profileID, a.UpdatedAt); err != nil {
		return err
	}
	a.SharedProfileID = &profileID
	return nil
}

func (w *TxWriter) CreateCategory(ctx context.Context, c *categoryentity.Category) error {
	if err := w.categories.Create(ctx, c); err != nil {
		return fmt.Errorf("insert category %s/%s: %w", c.Kind, c.Name, err)
	}
	return nil
}
