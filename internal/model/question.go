package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Question is the payload forwarded to the AI service.
// Field order matters: it fixes the JSON layout of the outbound body.
type Question struct {
	StoreID  string `json:"store_id"`
	Question string `json:"question"`
}

// Complete reports whether both fields carry non-whitespace text.
func (q Question) Complete() bool {
	return strings.TrimSpace(q.StoreID) != "" && strings.TrimSpace(q.Question) != ""
}

// Relay is a downstream response handed back to the caller unchanged.
type Relay struct {
	StatusCode int
	Body       json.RawMessage
}

// ShopToken is a store's access token as persisted by the credential store.
// Token is plaintext here; encryption happens inside the repository.
type ShopToken struct {
	StoreID     string    `json:"store_id"`
	Token       string    `json:"-"`
	InstalledAt time.Time `json:"installed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
