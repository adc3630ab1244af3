package domain

import "time"

// Token represents an opaque bearer credential issued at login and stored
// in Redis with a TTL. The token id itself is the secret presented by
// clients; there is nothing to decode.
type Token struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Token) IsExpired(reference time.Time) bool {
	if t == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !t.ExpiresAt.After(reference)
}
