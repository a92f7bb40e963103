package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/entity"
)

// SettingRepo provides data access for personal_settings and shared_settings.
type SettingRepo struct {
	db sqlx.ExtContext
}

// NewSettingRepo constructs a repo over a pool or a transaction.
func NewSettingRepo(db sqlx.ExtContext) *SettingRepo {
	return &SettingRepo{db: db}
}

// CreatePersonal inserts the settings row of an account.
func (r *SettingRepo) CreatePersonal(ctx context.Context, s *entity.PersonalSettings) error {
	const q = `INSERT INTO personal_settings (account_id, theme, language, currency, notify_email, notify_push,
			notify_budget_alerts, notify_goal_reminders, notify_weekly_summary, share_analytics, assistant_personality,
			created_at, updated_at)
		VALUES (:account_id, :theme, :language, :currency, :notify_email, :notify_push,
			:notify_budget_alerts, :notify_goal_reminders, :notify_weekly_summary, :share_analytics, :assistant_personality,
			:created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, r.db, q, s)
	return err
}

// CreateShared inserts the settings row of a shared profile.
func (r *SettingRepo) CreateShared(ctx context.Context, s *entity.SharedSettings) error {
	const q = `INSERT INTO shared_settings (shared_profile_id, split_method, default_currency, budget_cycle,
			cycle_start_day, shared_goal_notifications, created_at, updated_at)
		VALUES (:shared_profile_id, :split_method, :default_currency, :budget_cycle,
			:cycle_start_day, :shared_goal_notifications, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, r.db, q, s)
	return err
}

// GetPersonal returns an account's settings or sql.ErrNoRows.
func (r *SettingRepo) GetPersonal(ctx context.Context, accountID string) (*entity.PersonalSettings, error) {
	const q = `SELECT account_id, theme, language, currency, notify_email, notify_push, notify_budget_alerts,
			notify_goal_reminders, notify_weekly_summary, share_analytics, assistant_personality, created_at, updated_at
		FROM personal_settings WHERE account_id = ?`
	var s entity.PersonalSettings
	if err := sqlx.GetContext(ctx, r.db, &s, r.db.Rebind(q), accountID); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetShared returns a shared profile's settings or sql.ErrNoRows.
func (r *SettingRepo) GetShared(ctx context.Context, profileID string) (*entity.SharedSettings, error) {
	const q = `SELECT shared_profile_id, split_method, default_currency, budget_cycle, cycle_start_day,
			shared_goal_notifications, created_at, updated_at
		FROM shared_settings WHERE shared_profile_id = ?`
	var s entity.SharedSettings
	if err := sqlx.GetContext(ctx, r.db, &s, r.db.Rebind(q), profileID); err != nil {
		return nil, err
	}
	return &s, nil
}
