package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/couple/entity"
	settingentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/entity"
	settingrepo "github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/repo"
)

// ProfileRepo provides data access for shared_profiles.
type ProfileRepo struct {
	db sqlx.ExtContext
}

func NewProfileRepo(db sqlx.ExtContext) *ProfileRepo { return &ProfileRepo{db: db} }

// CreateWithSettings inserts the profile and its settings sub-record. Callers
// must run it inside a transaction so neither row can exist without the other.
func (r *ProfileRepo) CreateWithSettings(ctx context.Context, p *entity.SharedProfile, s *settingentity.SharedSettings) error {
	const q = `INSERT INTO shared_profiles (id, name, currency, timezone, created_at, updated_at)
		VALUES (:id, :name, :currency, :timezone, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.db, q, p); err != nil {
		return fmt.Errorf("insert shared profile: %w", err)
	}
	s.SharedProfileID = p.ID
	if err := settingrepo.NewSettingRepo(r.db).CreateShared(ctx, s); err != nil {
		return fmt.Errorf("insert shared settings: %w", err)
	}
	return nil
}

// GetByID fetches a profile or sql.ErrNoRows.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.SharedProfile, error) {
	const q = `SELECT id, name, currency, timezone, created_at, updated_at FROM shared_profiles WHERE id = ?`
	var p entity.SharedProfile
	if err := sqlx.GetContext(ctx, r.db, &p, r.db.Rebind(q), id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Count returns the number of shared profiles.
func (r *ProfileRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM shared_profiles`)
	return n, err
}
