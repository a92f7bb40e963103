package entity

import "time"

// Account is a row of the `accounts` table. Email is stored normalized (trimmed, lower case).
type Account struct {
	ID              string     `db:"id"`
	Email           string     `db:"email"`
	Name            string     `db:"name"`
	VerifiedAt      *time.Time `db:"verified_at"`
	SharedProfileID *string    `db:"shared_profile_id"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// HasCouple reports whether the account belongs to a shared profile.
func (a *Account) HasCouple() bool { return a.SharedProfileID != nil && *a.SharedProfileID != "" }

// Verified reports whether the account's email has been verified.
func (a *Account) Verified() bool { return a.VerifiedAt != nil }

// Credential is the stored password credential of an account.
type Credential struct {
	AccountID    string    `db:"account_id"`
	PasswordHash string    `db:"password_hash"`
	PasswordAlgo string    `db:"password_algo"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// PublicView is the projection of an account that may leave the service.
type PublicView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	HasCouple bool   `json:"hasCouple"`
}

// Public returns the public projection of a.
func (a *Account) Public() PublicView {
	return PublicView{ID: a.ID, Email: a.Email, Name: a.Name, HasCouple: a.HasCouple()}
}
