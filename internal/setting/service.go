package setting

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/entity"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting/repo"
)

// ProfileLookup resolves the shared profile an account belongs to, if any.
type ProfileLookup interface {
	SharedProfileID(ctx context.Context, accountID string) (string, bool, error)
}

// Service encapsulates read access to personal and shared settings.
type Service struct {
	repo     *repo.SettingRepo
	profiles ProfileLookup
}

// NewService constructs a Service over db.
func NewService(db *sqlx.DB, profiles ProfileLookup) *Service {
	return &Service{repo: repo.NewSettingRepo(db), profiles: profiles}
}

var ErrNotFound = errors.New("not found")

// View is what an account sees of its settings.
type View struct {
	Personal *entity.PersonalSettings `json:"personal"`
	Shared   *entity.SharedSettings   `json:"shared,omitempty"`
}

// Get returns the account's settings, including the shared settings of its couple.
func (s *Service) Get(ctx context.Context, accountID string) (*View, error) {
	personal, err := s.repo.GetPersonal(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	view := &View{Personal: personal}

	profileID, ok, err := s.profiles.SharedProfileID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return view, nil
	}
	shared, err := s.repo.GetShared(ctx, profileID)
	if err != nil {
		// a profile without settings breaks the provisioning invariant; surface it
		return nil, err
	}
	view.Shared = shared
	return view, nil
}
