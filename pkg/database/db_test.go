package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteConnectAndMigrate(t *testing.T) {
	cfg := Config{
		Driver:  DriverSQLite,
		DSN:     filepath.Join(t.TempDir(), "nested", "test.db"),
		Timeout: time.Second,
	}
	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer db.Close()

	if err := Migrate(cfg); err != nil {
		t.Fatalf("first Migrate failed: %v", err)
	}
	t.Run("migrations are idempotent", func(t *testing.T) {
		if err := Migrate(cfg); err != nil {
			t.Fatalf("second Migrate failed: %v", err)
		}
	})

	ctx := context.Background()
	for _, table := range []string{"accounts", "account_credentials", "personal_settings", "shared_profiles", "shared_settings", "categories"} {
		var n int
		if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
			t.Errorf("table %s not queryable: %v", table, err)
		}
	}

	t.Run("email uniqueness is case-insensitive", func(t *testing.T) {
		now := time.Now().UTC()
		insert := db.Rebind(`INSERT INTO accounts (id, email, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`)
		if _, err := db.ExecContext(ctx, insert, "1", "ana@example.com", "Ana", now, now); err != nil {
			t.Fatalf("first insert failed: %v", err)
		}
		_, err := db.ExecContext(ctx, insert, "2", "ANA@example.com", "Ana", now, now)
		if err == nil {
			t.Fatal("expected unique violation, got nil")
		}
		if !IsUniqueViolation(err, "accounts_email_key") {
			t.Errorf("IsUniqueViolation(%v) = false, want true", err)
		}
		if IsUniqueViolation(err, "categories_account_kind_name_key") {
			t.Error("violation matched the wrong constraint")
		}
	})

	t.Run("foreign keys are enforced", func(t *testing.T) {
		now := time.Now().UTC()
		_, err := db.ExecContext(ctx,
			db.Rebind(`INSERT INTO personal_settings (account_id, theme, language, currency, notify_email, notify_push,
				notify_budget_alerts, notify_goal_reminders, notify_weekly_summary, share_analytics, assistant_personality,
				created_at, updated_at) VALUES (?, 'light', 'es', 'EUR', TRUE, TRUE, TRUE, TRUE, TRUE, FALSE, 'friendly', ?, ?)`),
			"missing", now, now)
		if err == nil {
			t.Fatal("expected foreign key failure for unknown account")
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Error("nil error reported as violation")
	}
	if IsUniqueViolation(errors.New("UNIQUE constraint failed"), "") {
		t.Error("plain error reported as violation")
	}
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	if _, err := Connect(Config{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
