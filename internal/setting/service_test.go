package setting

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	accountentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/entity"
	accountrepo "github.com/ovaphlow/pitchfork/service-couple-finance/internal/account/repo"
	coupleentity "github.com/ovaphlow/pitchfork/service-couple-finance/internal/couple/entity"
	couplerepo "github.com/ovaphlow/pitchfork/service-couple-finance/internal/couple/repo"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/session"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/entity"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/repo"
	"github.com/ovaphlow/pitchfork/service-couple-finance/pkg/database"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cfg := database.Config{Driver: database.DriverSQLite, DSN: filepath.Join(t.TempDir(), "setting.db"), Timeout: time.Second}
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(cfg); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}

// seed creates an account with personal settings and, when profileID is set,
// a shared profile with its settings.
func seed(t *testing.T, db *sqlx.DB, accountID, profileID string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	if profileID != "" {
		if err := couplerepo.NewProfileRepo(db).CreateWithSettings(ctx, coupleentity.NewSharedProfile(profileID, "Casa", now), entity.DefaultSharedSettings(profileID, now)); err != nil {
			t.Fatalf("create profile: %v", err)
		}
	}
	accounts := accountrepo.NewAccountRepo(db)
	if err := accounts.Create(ctx, &accountentity.Account{ID: accountID, Email: accountID + "@example.com", Name: "Ana", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if profileID != "" {
		if err := accounts.LinkSharedProfile(ctx, accountID, profileID, now); err != nil {
			t.Fatalf("link profile: %v", err)
		}
	}
	if err := repo.NewSettingRepo(db).CreatePersonal(ctx, entity.DefaultPersonalSettings(accountID, now)); err != nil {
		t.Fatalf("create personal settings: %v", err)
	}
}

type lookupFunc func(ctx context.Context, accountID string) (string, bool, error)

func (f lookupFunc) SharedProfileID(ctx context.Context, accountID string) (string, bool, error) {
	return f(ctx, accountID)
}

func TestServiceGet(t *testing.T) {
	db := newTestDB(t)
	seed(t, db, "solo", "")
	seed(t, db, "paired", "p1")
	svc := NewService(db, accountrepo.NewAccountRepo(db))
	ctx := context.Background()

	if n, err := couplerepo.NewProfileRepo(db).Count(ctx); err != nil || n != 1 {
		t.Fatalf("Count = %d, %v; want 1", n, err)
	}

	t.Run("personal only", func(t *testing.T) {
		view, err := svc.Get(ctx, "solo")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if view.Personal.Currency != "EUR" || view.Shared != nil {
			t.Errorf("unexpected view %+v", view)
		}
	})

	t.Run("with shared settings", func(t *testing.T) {
		view, err := svc.Get(ctx, "paired")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if view.Shared == nil || view.Shared.SplitMethod != "equal" || !view.Shared.SharedGoalNotifications {
			t.Errorf("unexpected shared settings %+v", view.Shared)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("lookup failure", func(t *testing.T) {
		boom := errors.New("boom")
		svc := NewService(db, lookupFunc(func(context.Context, string) (string, bool, error) { return "", false, boom }))
		if _, err := svc.Get(ctx, "solo"); !errors.Is(err, boom) {
			t.Errorf("got %v, want boom", err)
		}
	})
}

func TestHandlerGet(t *testing.T) {
	db := newTestDB(t)
	seed(t, db, "paired", "p1")
	h := NewHandler(NewService(db, accountrepo.NewAccountRepo(db)), zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	req = req.WithContext(session.WithAccountID(req.Context(), "paired"))
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["personal"]["theme"] != "light" || body["shared"]["budgetCycle"] != "monthly" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	req = req.WithContext(session.WithAccountID(req.Context(), "missing"))
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
