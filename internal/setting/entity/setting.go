package entity

import "time"

// PersonalSettings is one-to-one with an account.
type PersonalSettings struct {
	AccountID            string    `db:"account_id" json:"-"`
	Theme                string    `db:"theme" json:"theme"`
	Language             string    `db:"language" json:"language"`
	Currency             string    `db:"currency" json:"currency"`
	NotifyEmail          bool      `db:"notify_email" json:"notifyEmail"`
	NotifyPush           bool      `db:"notify_push" json:"notifyPush"`
	NotifyBudgetAlerts   bool      `db:"notify_budget_alerts" json:"notifyBudgetAlerts"`
	NotifyGoalReminders  bool      `db:"notify_goal_reminders" json:"notifyGoalReminders"`
	NotifyWeeklySummary  bool      `db:"notify_weekly_summary" json:"notifyWeeklySummary"`
	ShareAnalytics       bool      `db:"share_analytics" json:"shareAnalytics"`
	AssistantPersonality string    `db:"assistant_personality" json:"assistantPersonality"`
	CreatedAt            time.Time `db:"created_at" json:"-"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultPersonalSettings returns the configuration every new account starts with.
func DefaultPersonalSettings(accountID string, now time.Time) *PersonalSettings {
	return &PersonalSettings{
		AccountID:            accountID,
		Theme:                "light",
		Language:             "es",
		Currency:             "EUR",
		NotifyEmail:          true,
		NotifyPush:           true,
		NotifyBudgetAlerts:   true,
		NotifyGoalReminders:  true,
		NotifyWeeklySummary:  true,
		ShareAnalytics:       false,
		AssistantPersonality: "friendly",
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// SharedSettings belongs to exactly one shared profile.
type SharedSettings struct {
	SharedProfileID         string    `db:"shared_profile_id" json:"-"`
	SplitMethod             string    `db:"split_method" json:"splitMethod"`
	DefaultCurrency         string    `db:"default_currency" json:"defaultCurrency"`
	BudgetCycle             string    `db:"budget_cycle" json:"budgetCycle"`
	CycleStartDay           int       `db:"cycle_start_day" json:"cycleStartDay"`
	SharedGoalNotifications bool      `db:"shared_goal_notifications" json:"sharedGoalNotifications"`
	CreatedAt               time.Time `db:"created_at" json:"-"`
	UpdatedAt               time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultSharedSettings returns the settings created alongside a new shared profile.
func DefaultSharedSettings(profileID string, now time.Time) *SharedSettings {
	return &SharedSettings{
		SharedProfileID:         profileID,
		SplitMethod:             "equal",
		DefaultCurrency:         "EUR",
		BudgetCycle:             "monthly",
		CycleStartDay:           1,
		SharedGoalNotifications: true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}
