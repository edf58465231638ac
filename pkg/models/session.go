package models

import "time"

// SessionRecord is one chat's persisted session: the two logical slots
// (bearer token, serialized user snapshot) that survive restarts. UserID
// is denormalized from the snapshot so approval notifications can find
// the chat belonging to an account.
type SessionRecord struct {
	ChatID    int64
	Token     string
	UserJSON  []byte
	UserID    *int64
	UpdatedAt time.Time
}
