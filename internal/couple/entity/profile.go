package entity

import "time"

const (
	DefaultCurrency = "EUR"
	DefaultTimezone = "Europe/Madrid"
)

// SharedProfile is the couple grouping that accounts join.
type SharedProfile struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Currency  string    `db:"currency" json:"currency"`
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewSharedProfile returns a profile named name with the deployment defaults.
func NewSharedProfile(id, name string, now time.Time) *SharedProfile {
	return &SharedProfile{
		ID:        id,
		Name:      name,
		Currency:  DefaultCurrency,
		Timezone:  DefaultTimezone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
