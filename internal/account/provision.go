package account

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/entity"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/repo"
	categoryentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/category/entity"
	coupleentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/couple/entity"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/notify"
	settingentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/entity"
	"github.com/ovaphlow/pitchfork/service-couple-finance/pkg/database"
)

// IDSource hands out primary keys.
type IDSource interface {
	NewID() string
}

// Provisioner creates a fully provisioned account (account, credential,
// settings, optional shared profile and the default categories) or nothing.
type Provisioner struct {
	store     Store
	hasher    PasswordHasher
	ids       IDSource
	publisher notify.Publisher
	logger    *zap.SugaredLogger
	cfg       Config
	now       func() time.Time
}

// NewProvisioner wires a provisioner. A nil hasher means bcrypt at DefaultBcryptCost.
func NewProvisioner(store Store, hasher PasswordHasher, ids IDSource, publisher notify.Publisher, logger *zap.SugaredLogger, cfg Config) *Provisioner {
	if hasher == nil {
		hasher = BcryptHasher{Cost: DefaultBcryptCost}
	}
	if publisher == nil {
		publisher = notify.NewLogPublisher(logger)
	}
	return &Provisioner{
		store:     store,
		hasher:    hasher,
		ids:       ids,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ProvisionedAccount is the public result of a successful registration.
type ProvisionedAccount = entity.PublicView

// Provision registers a new account. Errors match ErrValidationFailed,
// ErrDuplicateAccount or ErrProvisioningFailed.
func (p *Provisioner) Provision(ctx context.Context, req RegistrationRequest) (*ProvisionedAccount, error) {
	in, err := validateRegistration(req)
	if err != nil {
		return nil, err
	}

	// Fast path only: the unique index decides when two registrations race.
	existing, err := p.store.FindAccountByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup email: %w", ErrProvisioningFailed, err)
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	// Hash before opening the transaction so no lock is held while bcrypt runs.
	hash, algo, err := p.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", ErrProvisioningFailed, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvisioningFailed, err)
	}

	now := p.now().UTC()
	acc := &entity.Account{
		ID:        p.ids.NewID(),
		Email:     in.Email,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.cfg.AutoVerify {
		acc.VerifiedAt = &now
	}

	err = p.store.InTx(ctx, func(w Writer) error {
		if err := w.CreateAccount(ctx, acc); err != nil {
			return err
		}
		cred := &entity.Credential{AccountID: acc.ID, PasswordHash: hash, PasswordAlgo: algo, UpdatedAt: now}
		if err := w.SaveCredential(ctx, cred); err != nil {
			return err
		}
		if err := w.CreatePersonalSettings(ctx, settingentity.DefaultPersonalSettings(acc.ID, now)); err != nil {
			return err
		}

		scope := categoryentity.PersonalScope(acc.ID)
		if in.CoupleName != "" {
			profile := coupleentity.NewSharedProfile(p.ids.NewID(), in.CoupleName, now)
			if err := w.CreateSharedProfile(ctx, profile, settingentity.DefaultSharedSettings(profile.ID, now)); err != nil {
				return err
			}
			if err := w.LinkSharedProfile(ctx, acc, profile.ID); err != nil {
				return err
			}
			scope = categoryentity.SharedScope(profile.ID)
		}

		for _, c := range categoryentity.NewDefaultCategories(acc.ID, scope, p.ids.NewID, now) {
			if err := w.CreateCategory(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// InTx may have linked the profile on acc before rolling back.
		acc.SharedProfileID = nil
		if database.IsUniqueViolation(err, repo.EmailConstraint) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("%w: %w", ErrProvisioningFailed, err)
	}

	p.logger.Infow("account provisioned", "account_id", acc.ID, "has_couple", acc.HasCouple(), "verified", acc.Verified())

	if !acc.Verified() {
		p.requestVerification(ctx, acc)
	}

	view := acc.Public()
	return &view, nil
}

// requestVerification runs after commit; a failure here leaves a valid,
// unverified account behind and is only logged.
func (p *Provisioner) requestVerification(ctx context.Context, acc *entity.Account) {
	msg := notify.NewVerificationRequested(acc.ID, acc.Email, acc.Name)
	if err := p.publisher.PublishVerificationRequested(context.WithoutCancel(ctx), msg); err != nil {
		p.logger.Warnw("verification request not published", "account_id", acc.ID, "err", err)
	}
}
