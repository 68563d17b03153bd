package notification

import "time"

// Notification is an in-app message shown on a user's feed.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}
