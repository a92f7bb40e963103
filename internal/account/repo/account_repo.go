package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/entity"
)

// EmailConstraint is the unique index guarding account emails.
const EmailConstraint = "accounts_email_key"

// AccountRepo provides data access for accounts and their credentials.
type AccountRepo struct {
	db sqlx.ExtContext
}

func NewAccountRepo(db sqlx.ExtContext) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts a new account row.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	const q = `INSERT INTO accounts (id, email, name, verified_at, shared_profile_id, created_at, updated_at)
		VALUES (:id, :email, :name, :verified_at, :shared_profile_id, :created_at, :updated_at)`
	params := map[string]any{
		"id":                a.ID,
		"email":             a.Email,
		"name":              a.Name,
		"verified_at":       nil,
		"shared_profile_id": nil,
		"created_at":        a.CreatedAt,
		"updated_at":        a.UpdatedAt,
	}
	if a.VerifiedAt != nil {
		params["verified_at"] = *a.VerifiedAt
	}
	if a.SharedProfileID != nil {
		params["shared_profile_id"] = *a.SharedProfileID
	}
	_, err := sqlx.NamedExecContext(ctx, r.db, q, params)
	return err
}

// GetByEmail returns the account with the given normalized email or sql.ErrNoRows.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	const q = `SELECT id, email, name, verified_at, shared_profile_id, created_at, updated_at
		FROM accounts WHERE lower(email) = ?`
	var a entity.Account
	if err := sqlx.GetContext(ctx, r.db, &a, r.db.Rebind(q), email); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID fetches an account or sql.ErrNoRows.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	const q = `SELECT id, email, name, verified_at, shared_profile_id, created_at, updated_at
		FROM accounts WHERE id = ?`
	var a entity.Account
	if err := sqlx.GetContext(ctx, r.db, &a, r.db.Rebind(q), id); err != nil {
		return nil, err
	}
	return &a, nil
}

// LinkSharedProfile sets the account's shared profile.
func (r *AccountRepo) LinkSharedProfile(ctx context.Context, accountID, profileID string, now time.Time) error {
	const q = `UPDATE accounts SET shared_profile_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), profileID, now, accountID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("link shared profile: %d rows updated", n)
	}
	return nil
}

// SaveCredential stores the password hash of an account.
func (r *AccountRepo) SaveCredential(ctx context.Context, c *entity.Credential) error {
	const q = `INSERT INTO account_credentials (account_id, password_hash, password_algo, updated_at)
		VALUES (:account_id, :password_hash, :password_algo, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, r.db, q, c)
	return err
}

// GetCredential returns the stored credential or sql.ErrNoRows.
func (r *AccountRepo) GetCredential(ctx context.Context, accountID string) (*entity.Credential, error) {
	const q = `SELECT account_id, password_hash, password_algo, updated_at FROM account_credentials WHERE account_id = ?`
	var c entity.Credential
	if err := sqlx.GetContext(ctx, r.db, &c, r.db.Rebind(q), accountID); err != nil {
		return nil, err
	}
	return &c, nil
}

// SharedProfileID returns the account's shared profile id, if any.
func (r *AccountRepo) SharedProfileID(ctx context.Context, accountID string) (string, bool, error) {
	const q = `SELECT shared_profile_id FROM accounts WHERE id = ?`
	var id sql.NullString
	if err := sqlx.GetContext(ctx, r.db, &id, r.db.Rebind(q), accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return id.String, id.Valid && id.String != "", nil
}
