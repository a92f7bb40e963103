package notify

import (
	"encoding/json"
	"time"
)

// VerificationRequested asks a mailer to send a verification link to a newly
// provisioned account that was not auto-verified.
type VerificationRequested struct {
	AccountID   string    `json:"accountId"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	RequestedAt time.Time `json:"requestedAt"`
}

// NewVerificationRequested builds the event for an account.
func NewVerificationRequested(accountID, email, name string) *VerificationRequested {
	return &VerificationRequested{
		AccountID:   accountID,
		Email:       email,
		Name:        name,
		RequestedAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *VerificationRequested) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// VerificationRequestedFromJSON decodes a message body.
func VerificationRequestedFromJSON(data []byte) (*VerificationRequested, error) {
	var msg VerificationRequested
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
