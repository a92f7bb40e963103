package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/category/entity"
)

// CategoryRepo provides data access for the categories table. It runs against
// either the pool or an open transaction.
type CategoryRepo struct {
	db sqlx.ExtContext
}

func NewCategoryRepo(db sqlx.ExtContext) *CategoryRepo { return &CategoryRepo{db: db} }

// Create inserts one category row.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	const q = `INSERT INTO categories (id, account_id, scope_kind, scope_id, name, icon, color, kind, is_default, created_at)
		VALUES (:id, :account_id, :scope_kind, :scope_id, :name, :icon, :color, :kind, :is_default, :created_at)`
	params := map[string]any{
		"id":         c.ID,
		"account_id": c.AccountID,
		"scope_kind": string(c.ScopeKind),
		"scope_id":   c.ScopeID,
		"name":       c.Name,
		"icon":       c.Icon,
		"color":      c.Color,
		"kind":       string(c.Kind),
		"is_default": c.IsDefault,
		"created_at": c.CreatedAt,
	}
	_, err := sqlx.NamedExecContext(ctx, r.db, q, params)
	return err
}

// ListByAccount returns the account's categories ordered by kind then name.
// An empty kind returns both kinds.
func (r *CategoryRepo) ListByAccount(ctx context.Context, accountID string, kind entity.Kind) ([]*entity.Category, error) {
	q := `SELECT id, account_id, scope_kind, scope_id, name, icon, color, kind, is_default, created_at
		FROM categories WHERE account_id = ?`
	args := []any{accountID}
	if kind != "" {
		q += ` AND kind = ?`
		args = append(args, string(kind))
	}
	q += ` ORDER BY kind, name`
	var out []*entity.Category
	if err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByScope returns every category owned by scope, across accounts.
func (r *CategoryRepo) ListByScope(ctx context.Context, scope entity.Scope) ([]*entity.Category, error) {
	const q = `SELECT id, account_id, scope_kind, scope_id, name, icon, color, kind, is_default, created_at
		FROM categories WHERE scope_kind = ? AND scope_id = ? ORDER BY kind, name`
	var out []*entity.Category
	if err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(q), string(scope.Kind), scope.ID); err != nil {
		return nil, err
	}
	return out, nil
}
