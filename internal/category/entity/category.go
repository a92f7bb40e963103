package entity

import "time"

// Kind tells income categories apart from expense categories.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k == KindExpense || k == KindIncome }

// ScopeKind names which identifier space a Scope id belongs to.
type ScopeKind string

const (
	ScopePersonal ScopeKind = "personal"
	ScopeShared   ScopeKind = "shared"
)

// Scope owns a category: either a single account or a shared (couple) profile.
// Build it with PersonalScope or SharedScope so the id never travels without its kind.
type Scope struct {
	Kind ScopeKind
	ID   string
}

func PersonalScope(accountID string) Scope { return Scope{Kind: ScopePersonal, ID: accountID} }

func SharedScope(profileID string) Scope { return Scope{Kind: ScopeShared, ID: profileID} }

func (s Scope) IsShared() bool { return s.Kind == ScopeShared }

// Category is a row in the `categories` table.
type Category struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"accountId"`
	ScopeKind ScopeKind `db:"scope_kind" json:"scopeKind"`
	ScopeID   string    `db:"scope_id" json:"scopeId"`
	Name      string    `db:"name" json:"name"`
	Icon      string    `db:"icon" json:"icon"`
	Color     string    `db:"color" json:"color"`
	Kind      Kind      `db:"kind" json:"kind"`
	IsDefault bool      `db:"is_default" json:"isDefault"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Scope returns the tagged owner of the category.
func (c *Category) Scope() Scope { return Scope{Kind: c.ScopeKind, ID: c.ScopeID} }
